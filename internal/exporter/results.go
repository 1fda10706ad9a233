package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "fuelmx/internal/errors"
	"fuelmx/pkg/contracts/domain"
)

// ResultStore persists the computed result set as a JSON artifact. A valid
// artifact lets a later run serve results without reloading and
// reaggregating the input datasets.
type ResultStore struct {
	path   string
	logger *slog.Logger
}

// NewResultStore creates a store writing to the given artifact path
func NewResultStore(path string, logger *slog.Logger) *ResultStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResultStore{
		path:   path,
		logger: logger.With(slog.String("component", "result_store")),
	}
}

// Save writes the result set atomically: a temp file in the same directory
// renamed over the target, so a crash mid-write never leaves a truncated
// artifact behind.
func (s *ResultStore) Save(ctx context.Context, results *domain.ResultSet) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return apperrors.NewStorageError("create results directory", err)
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("encode results", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".results-*.json")
	if err != nil {
		return apperrors.NewStorageError("create temp results file", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperrors.NewStorageError("write results", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewStorageError("close results file", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return apperrors.NewStorageError("replace results file", err)
	}

	s.logger.InfoContext(ctx, "results artifact saved",
		slog.String("path", s.path),
		slog.Int("bytes", len(data)))
	return nil
}

// Load reads a previously saved result set. A missing file returns a
// NOT_FOUND error; an artifact with the wrong format marker is treated as
// stale and also reported NOT_FOUND so callers fall back to recomputation.
func (s *ResultStore) Load(ctx context.Context) (*domain.ResultSet, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("results artifact").WithContext("path", s.path)
		}
		return nil, apperrors.NewStorageError("read results artifact", err)
	}

	var results domain.ResultSet
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, apperrors.NewParsingError("decode results artifact", err).
			WithContext("path", s.path)
	}
	if results.Format != domain.ResultSetFormat {
		s.logger.WarnContext(ctx, "results artifact has unexpected format, ignoring",
			slog.String("path", s.path),
			slog.String("format", results.Format))
		return nil, apperrors.NewNotFoundError("compatible results artifact").WithContext("path", s.path)
	}

	s.logger.InfoContext(ctx, "results artifact loaded",
		slog.String("path", s.path),
		slog.Time("generated_at", results.GeneratedAt))
	return &results, nil
}
