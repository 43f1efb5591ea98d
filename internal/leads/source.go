// Package leads loads lead records from files or the marketplace backend and
// writes them back out for export.
package leads

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cristianoliveira/leadnexus/internal/config"
	"github.com/cristianoliveira/leadnexus/internal/domain"
)

var (
	// ErrBackend indicates the marketplace backend rejected or failed a request.
	ErrBackend = errors.New("leads backend error")
	// ErrNoSource indicates neither a file nor a backend URL is configured.
	ErrNoSource = errors.New("no leads source configured")
	// ErrUnsupportedFormat indicates a file extension that cannot be read.
	ErrUnsupportedFormat = errors.New("unsupported leads file format")
)

// Source provides the lead list a search runs over.
type Source interface {
	Load(ctx context.Context) ([]domain.Record, error)
}

// FileSource reads leads from a JSON or CSV file chosen by extension.
type FileSource struct {
	Path string
}

// NewFileSource returns a FileSource for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and decodes the file.
func (s *FileSource) Load(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("leads: open %s: %w", s.Path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".json":
		records, err := ReadJSON(f)
		if err != nil {
			return nil, fmt.Errorf("leads: read %s: %w", s.Path, err)
		}
		return records, nil
	case ".csv", ".tsv", ".txt":
		res, err := ReadCSV(f)
		if err != nil {
			return nil, fmt.Errorf("leads: read %s: %w", s.Path, err)
		}
		return res.Records, nil
	default:
		return nil, fmt.Errorf("leads: %s: %w", s.Path, ErrUnsupportedFormat)
	}
}

// Describe names the source for messages.
func (s *FileSource) Describe() string { return s.Path }

// Open picks a source for location: http(s) URLs use the backend, anything
// else is a file path. An empty location falls back to the configured
// leads_source, then api_base_url.
func Open(location string) (Source, error) {
	if strings.TrimSpace(location) == "" {
		location = config.Get("leads_source", "")
	}
	if strings.TrimSpace(location) == "" {
		location = config.Get("api_base_url", "")
	}
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, ErrNoSource
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		timeout := time.Duration(config.GetInt("api_timeout_seconds", 10)) * time.Second
		return NewHTTPSource(location, config.Get("api_token", ""), timeout), nil
	}
	return NewFileSource(location), nil
}

// Describe returns a short human label for a source.
func Describe(s Source) string {
	if d, ok := s.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	return fmt.Sprintf("%T", s)
}
