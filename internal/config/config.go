package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

// ErrConfiguration is wrapped by every validation failure in Load.
var ErrConfiguration = errors.New("invalid configuration")

// DefaultSourceURL is harvested when no sources file exists.
const DefaultSourceURL = "https://pubmed.ncbi.nlm.nih.gov/?term=latest"

// Vector store backends.
const (
	BackendSQLite = "sqlite"
	BackendQdrant = "qdrant"
)

// Source is one configured harvest source. Type is empty when it should be
// detected from the URL.
type Source struct {
	Name string           `toml:"name"`
	URL  string           `toml:"url"`
	Type paper.SourceType `toml:"type"`
}

// sourcesFile is the layout of sources.toml.
type sourcesFile struct {
	Sources []Source `toml:"source"`
}

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL   string
	LLMModelName string
	LLMAPIKey    string

	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingAPIKey     string
	EmbeddingVectorSize int

	VectorBackend    string
	QdrantURL        string
	QdrantCollection string
	DBPath           string

	BackupDir       string
	UpdateStatePath string
	UpdateInterval  time.Duration

	ChunkSize    int
	ChunkOverlap int
	RetrievalK   int

	FetchTimeout       time.Duration
	FetchConcurrency   int
	FetchRatePerSecond float64

	SourcesFile string
	Sources     []Source

	APIPort   string
	LogLevel  slog.Level
	LogFormat string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		LLMBaseURL:         getEnv("LLM_BASE_URL", "https://api.groq.com/openai"),
		LLMModelName:       getEnv("LLM_MODEL", "mixtral-8x7b-32768"),
		LLMAPIKey:          getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL:   getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModelName: getEnv("EMBEDDING_MODEL_NAME", "sentence-transformers/all-MiniLM-L6-v2"),
		VectorBackend:      strings.ToLower(getEnv("VECTOR_BACKEND", BackendSQLite)),
		QdrantURL:          getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection:   getEnv("QDRANT_COLLECTION", "papers"),
		DBPath:             getEnv("DB_PATH", "./data/documed.db"),
		BackupDir:          getEnv("BACKUP_DIR", "./paper_backups"),
		UpdateStatePath:    getEnv("UPDATE_STATE_PATH", "./data/update_state.json"),
		SourcesFile:        getEnv("SOURCES_FILE", "sources.toml"),
		APIPort:            getEnv("API_PORT", "9000"),
		LogFormat:          strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}
	cfg.EmbeddingAPIKey = getEnv("EMBEDDING_API_KEY", cfg.LLMAPIKey)

	if cfg.LLMAPIKey == "" {
		return nil, fmt.Errorf("%w: LLM_API_KEY is required", ErrConfiguration)
	}

	var err error
	if cfg.EmbeddingVectorSize, err = positiveInt("EMBEDDING_VECTOR_SIZE", 384); err != nil {
		return nil, err
	}
	if cfg.ChunkSize, err = positiveInt("CHUNK_SIZE", 1000); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap, err = intEnv("CHUNK_OVERLAP", 200); err != nil {
		return nil, err
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("%w: CHUNK_OVERLAP (%d) must be >= 0 and smaller than CHUNK_SIZE (%d)", ErrConfiguration, cfg.ChunkOverlap, cfg.ChunkSize)
	}
	if cfg.RetrievalK, err = positiveInt("RETRIEVAL_K", 5); err != nil {
		return nil, err
	}
	if cfg.FetchConcurrency, err = positiveInt("FETCH_CONCURRENCY", 4); err != nil {
		return nil, err
	}
	if cfg.UpdateInterval, err = durationEnv("UPDATE_INTERVAL", 12*time.Hour); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = durationEnv("FETCH_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}

	rate := getEnv("FETCH_RATE_PER_SECOND", "2")
	cfg.FetchRatePerSecond, err = strconv.ParseFloat(rate, 64)
	if err != nil || cfg.FetchRatePerSecond < 0 {
		return nil, fmt.Errorf("%w: FETCH_RATE_PER_SECOND must be a non-negative number, got %q", ErrConfiguration, rate)
	}

	switch cfg.VectorBackend {
	case BackendSQLite, BackendQdrant:
	default:
		return nil, fmt.Errorf("%w: VECTOR_BACKEND must be %q or %q, got %q", ErrConfiguration, BackendSQLite, BackendQdrant, cfg.VectorBackend)
	}

	if cfg.LogLevel, err = parseLogLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("%w: LOG_FORMAT must be text or json, got %q", ErrConfiguration, cfg.LogFormat)
	}

	if cfg.Sources, err = LoadSources(cfg.SourcesFile); err != nil {
		return nil, err
	}

	// Create ./data directory if it doesn't exist
	for _, dir := range []string{filepath.Dir(cfg.DBPath), filepath.Dir(cfg.UpdateStatePath)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// LoadSources reads the harvest sources from a TOML file. A missing file
// yields the default PubMed source.
func LoadSources(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []Source{{Name: paper.SourcePubMed.Label(), URL: DefaultSourceURL, Type: paper.SourcePubMed}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrConfiguration, path, err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("%w: %s defines no sources", ErrConfiguration, path)
	}

	for i := range file.Sources {
		src := &file.Sources[i]
		src.URL = strings.TrimSpace(src.URL)
		if src.URL == "" {
			return nil, fmt.Errorf("%w: source %d in %s has no url", ErrConfiguration, i+1, path)
		}
		if src.Type != "" {
			t, err := paper.ParseSourceType(string(src.Type))
			if err != nil {
				return nil, fmt.Errorf("%w: source %d in %s: %w", ErrConfiguration, i+1, path, err)
			}
			src.Type = t
		}
		if src.Name == "" {
			src.Name = src.URL
		}
	}
	return file.Sources, nil
}

// loadDotEnv loads .env from the current directory, then from the first
// parent (up to five levels) that has one.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func intEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a valid integer: %w", ErrConfiguration, key, err)
	}
	return n, nil
}

func positiveInt(key string, defaultValue int) (int, error) {
	n, err := intEnv(key, defaultValue)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %s must be greater than 0", ErrConfiguration, key)
	}
	return n, nil
}

func durationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a duration like 12h: %w", ErrConfiguration, key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %s must be positive", ErrConfiguration, key)
	}
	return d, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: LOG_LEVEL must be debug, info, warn or error, got %q", ErrConfiguration, s)
	}
	return level, nil
}
