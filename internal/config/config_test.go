package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

var envVars = []string{
	"LLM_BASE_URL", "LLM_API_KEY", "LLM_MODEL",
	"EMBEDDING_BASE_URL", "EMBEDDING_MODEL_NAME", "EMBEDDING_API_KEY", "EMBEDDING_VECTOR_SIZE",
	"VECTOR_BACKEND", "QDRANT_URL", "QDRANT_COLLECTION", "DB_PATH",
	"BACKUP_DIR", "UPDATE_STATE_PATH", "UPDATE_INTERVAL",
	"CHUNK_SIZE", "CHUNK_OVERLAP", "RETRIEVAL_K",
	"FETCH_TIMEOUT", "FETCH_CONCURRENCY", "FETCH_RATE_PER_SECOND",
	"SOURCES_FILE", "API_PORT", "LOG_LEVEL", "LOG_FORMAT",
}

// isolate clears every variable Load reads and moves into an empty directory
// so no .env or sources.toml is picked up.
func isolate(t *testing.T) string {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
	}
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DB_PATH", filepath.Join(dir, "data", "documed.db"))
	t.Setenv("UPDATE_STATE_PATH", filepath.Join(dir, "data", "update_state.json"))
	return dir
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    func(*testing.T)
		wantErr     bool
		checkConfig func(*testing.T, *Config)
	}{
		{
			name:    "missing LLM_API_KEY",
			wantErr: true,
		},
		{
			name: "default values for optional fields",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_API_KEY", "gsk-test")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.LLMBaseURL != "https://api.groq.com/openai" || cfg.LLMModelName != "mixtral-8x7b-32768" {
					t.Errorf("LLM defaults = %q / %q", cfg.LLMBaseURL, cfg.LLMModelName)
				}
				if cfg.EmbeddingAPIKey != "gsk-test" {
					t.Errorf("EmbeddingAPIKey = %q, want fallback to LLM key", cfg.EmbeddingAPIKey)
				}
				if cfg.EmbeddingVectorSize != 384 || cfg.ChunkSize != 1000 || cfg.ChunkOverlap != 200 || cfg.RetrievalK != 5 {
					t.Errorf("numeric defaults = %d/%d/%d/%d", cfg.EmbeddingVectorSize, cfg.ChunkSize, cfg.ChunkOverlap, cfg.RetrievalK)
				}
				if cfg.VectorBackend != BackendSQLite || cfg.QdrantCollection != "papers" {
					t.Errorf("backend defaults = %q / %q", cfg.VectorBackend, cfg.QdrantCollection)
				}
				if cfg.UpdateInterval != 12*time.Hour || cfg.FetchTimeout != 30*time.Second {
					t.Errorf("duration defaults = %v / %v", cfg.UpdateInterval, cfg.FetchTimeout)
				}
				if cfg.FetchConcurrency != 4 || cfg.FetchRatePerSecond != 2 {
					t.Errorf("fetch defaults = %d / %v", cfg.FetchConcurrency, cfg.FetchRatePerSecond)
				}
				if cfg.BackupDir != "./paper_backups" || cfg.APIPort != "9000" {
					t.Errorf("BackupDir/APIPort = %q / %q", cfg.BackupDir, cfg.APIPort)
				}
				if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
					t.Errorf("log defaults = %v / %q", cfg.LogLevel, cfg.LogFormat)
				}
				if len(cfg.Sources) != 1 || cfg.Sources[0].URL != DefaultSourceURL || cfg.Sources[0].Type != paper.SourcePubMed {
					t.Errorf("Sources = %+v, want default PubMed source", cfg.Sources)
				}
			},
		},
		{
			name: "custom values",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_API_KEY", "gsk-test")
				t.Setenv("EMBEDDING_API_KEY", "emb-key")
				t.Setenv("VECTOR_BACKEND", "Qdrant")
				t.Setenv("UPDATE_INTERVAL", "30m")
				t.Setenv("CHUNK_SIZE", "500")
				t.Setenv("CHUNK_OVERLAP", "0")
				t.Setenv("FETCH_RATE_PER_SECOND", "0.5")
				t.Setenv("LOG_LEVEL", "debug")
				t.Setenv("LOG_FORMAT", "JSON")
			},
			checkConfig: func(t *testing.T, cfg *Config) {
				if cfg.EmbeddingAPIKey != "emb-key" {
					t.Errorf("EmbeddingAPIKey = %q", cfg.EmbeddingAPIKey)
				}
				if cfg.VectorBackend != BackendQdrant {
					t.Errorf("VectorBackend = %q", cfg.VectorBackend)
				}
				if cfg.UpdateInterval != 30*time.Minute || cfg.ChunkSize != 500 || cfg.ChunkOverlap != 0 {
					t.Errorf("UpdateInterval/ChunkSize/ChunkOverlap = %v/%d/%d", cfg.UpdateInterval, cfg.ChunkSize, cfg.ChunkOverlap)
				}
				if cfg.FetchRatePerSecond != 0.5 {
					t.Errorf("FetchRatePerSecond = %v", cfg.FetchRatePerSecond)
				}
				if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "json" {
					t.Errorf("log = %v / %q", cfg.LogLevel, cfg.LogFormat)
				}
			},
		},
		{
			name: "overlap not smaller than chunk size",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_API_KEY", "k")
				t.Setenv("CHUNK_SIZE", "200")
				t.Setenv("CHUNK_OVERLAP", "200")
			},
			wantErr: true,
		},
		{
			name: "negative overlap",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_API_KEY", "k")
				t.Setenv("CHUNK_OVERLAP", "-1")
			},
			wantErr: true,
		},
		{
			name: "invalid EMBEDDING_VECTOR_SIZE",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_API_KEY", "k")
				t.Setenv("EMBEDDING_VECTOR_SIZE", "invalid")
			},
			wantErr: true,
		},
		{
			name: "zero FETCH_CONCURRENCY",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_API_KEY", "k")
				t.Setenv("FETCH_CONCURRENCY", "0")
			},
			wantErr: true,
		},
		{
			name: "invalid UPDATE_INTERVAL",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_API_KEY", "k")
				t.Setenv("UPDATE_INTERVAL", "twice a day")
			},
			wantErr: true,
		},
		{
			name: "unknown VECTOR_BACKEND",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_API_KEY", "k")
				t.Setenv("VECTOR_BACKEND", "chroma")
			},
			wantErr: true,
		},
		{
			name: "unknown LOG_LEVEL",
			setupEnv: func(t *testing.T) {
				t.Setenv("LLM_API_KEY", "k")
				t.Setenv("LOG_LEVEL", "verbose")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			if tt.setupEnv != nil {
				tt.setupEnv(t)
			}

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Fatal("Load() expected error, got nil")
				}
				if !errors.Is(err, ErrConfiguration) {
					t.Errorf("Load() error = %v, want ErrConfiguration", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil {
				tt.checkConfig(t, cfg)
			}
		})
	}
}

func TestLoad_CreatesDataDirectory(t *testing.T) {
	dir := isolate(t)
	dbPath := filepath.Join(dir, "nested", "db", "documed.db")
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("DB_PATH", dbPath)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(dbPath)); err != nil {
		t.Errorf("Load() should create data directory: %v", err)
	}
	if cfg.DBPath != dbPath {
		t.Errorf("Load() DBPath = %v, want %v", cfg.DBPath, dbPath)
	}
}

func TestLoad_ReadsSourcesFile(t *testing.T) {
	dir := isolate(t)
	t.Setenv("LLM_API_KEY", "k")
	path := filepath.Join(dir, "sources.toml")
	content := `
[[source]]
name = "Nature medicine"
url = "https://www.nature.com/subjects/medical-research"
type = "nature"

[[source]]
url = "https://connect.medrxiv.org/relate/feed/181"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(cfg.Sources) != 2 {
		t.Fatalf("Sources = %+v, want 2", cfg.Sources)
	}
	if cfg.Sources[0].Name != "Nature medicine" || cfg.Sources[0].Type != paper.SourceNature {
		t.Errorf("Sources[0] = %+v", cfg.Sources[0])
	}
	if cfg.Sources[1].Type != "" || cfg.Sources[1].Name != cfg.Sources[1].URL {
		t.Errorf("Sources[1] = %+v, want detected type and URL as name", cfg.Sources[1])
	}
}

func TestLoadSources_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not toml", content: "[[source]\nurl ="},
		{name: "no sources", content: "# nothing here\n"},
		{name: "missing url", content: "[[source]]\nname = \"x\"\n"},
		{name: "unknown type", content: "[[source]]\nurl = \"https://example.org\"\ntype = \"chroma\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "sources.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadSources(path); !errors.Is(err, ErrConfiguration) {
				t.Errorf("LoadSources() error = %v, want ErrConfiguration", err)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		defaultValue string
		want         string
	}{
		{name: "env var set", value: "set-value", defaultValue: "default", want: "set-value"},
		{name: "empty env var uses default", value: "", defaultValue: "default", want: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_ENV_VAR", tt.value)
			if got := getEnv("TEST_ENV_VAR", tt.defaultValue); got != tt.want {
				t.Errorf("getEnv() = %q, want %q", got, tt.want)
			}
		})
	}
}
