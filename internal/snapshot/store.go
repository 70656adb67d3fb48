package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/lakshitcodes/DocuMed/internal/paper"
)

// DateLayout is the date format used in snapshot file names.
const DateLayout = "20060102"

const (
	filePrefix = "papers_"
	fileSuffix = ".json"
)

// ErrNotFound is returned when no snapshot exists for the requested date.
var ErrNotFound = errors.New("snapshot not found")

// Store reads and writes dated snapshot files in a directory.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string {
	return s.dir
}

// FileName returns the snapshot file name for the given date.
func FileName(date time.Time) string {
	return filePrefix + date.Format(DateLayout) + fileSuffix
}

// Path returns the full path of the snapshot for date.
func (s *Store) Path(date time.Time) string {
	return filepath.Join(s.dir, FileName(date))
}

// Write stores records as the snapshot for date, replacing any snapshot of the
// same date. The file is written to a temp file and renamed into place.
func (s *Store) Write(date time.Time, records []paper.Record) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if records == nil {
		records = []paper.Record{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, filePrefix+"*.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close snapshot: %w", err)
	}

	path := s.Path(date)
	if err := os.Rename(tmpName, path); err != nil {
		return "", fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return path, nil
}

// List returns the dates (YYYYMMDD) of all snapshots, newest first.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read snapshot directory: %w", err)
	}

	dates := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		date, ok := parseFileName(entry.Name())
		if !ok {
			continue
		}
		dates = append(dates, date)
	}

	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates, nil
}

// Load reads the snapshot for a YYYYMMDD date.
func (s *Store) Load(date string) ([]paper.Record, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid snapshot date %q: %w", date, err)
	}

	data, err := os.ReadFile(s.Path(t))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, date)
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var records []paper.Record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", date, err)
	}
	if records == nil {
		records = []paper.Record{}
	}
	return records, nil
}

// Latest returns the most recent snapshot and its date.
func (s *Store) Latest() (string, []paper.Record, error) {
	dates, err := s.List()
	if err != nil {
		return "", nil, err
	}
	if len(dates) == 0 {
		return "", nil, ErrNotFound
	}
	records, err := s.Load(dates[0])
	if err != nil {
		return "", nil, err
	}
	return dates[0], records, nil
}

func parseFileName(name string) (string, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return "", false
	}
	date := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	if _, err := time.Parse(DateLayout, date); err != nil {
		return "", false
	}
	return date, true
}
