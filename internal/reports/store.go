package reports

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// reported when a report id does not resolve to a stored file
var ErrReportNotFound = errors.New("report not found")

// report ids are filename stems, so only this exact shape is ever valid
// the strict match also keeps path traversal out of Get
var reportIDPattern = regexp.MustCompile(`^comparison_report_[0-9]{8}_[0-9]{6}$`)

// a stored report file
type Report struct {
	ID        string
	Filename  string
	Path      string
	Size      int64
	CreatedAt time.Time
}

// Store persists generated reports as files under one directory.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, creating it when missing.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("report directory cannot be empty")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create report directory %q: %w", dir, err)
	}

	return &Store{dir: dir}, nil
}

// Save writes the report bytes and returns the stored report. The id is
// the timestamped filename stem.
func (s *Store) Save(data []byte, generatedAt time.Time) (*Report, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("report data cannot be empty")
	}

	if generatedAt.IsZero() {
		generatedAt = time.Now()
	}

	filename := Filename(generatedAt)
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write report %q: %w", filename, err)
	}

	return &Report{
		ID:        strings.TrimSuffix(filename, ".pdf"),
		Filename:  filename,
		Path:      path,
		Size:      int64(len(data)),
		CreatedAt: generatedAt,
	}, nil
}

// Get resolves a report id to its stored file.
func (s *Store) Get(id string) (*Report, error) {
	if !reportIDPattern.MatchString(id) {
		return nil, ErrReportNotFound
	}

	filename := id + ".pdf"
	path := filepath.Join(s.dir, filename)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrReportNotFound
		}

		return nil, fmt.Errorf("failed to stat report %q: %w", id, err)
	}

	return &Report{
		ID:        id,
		Filename:  filename,
		Path:      path,
		Size:      info.Size(),
		CreatedAt: info.ModTime(),
	}, nil
}
