// Package store persists resume documents behind a small key/value
// interface with memory, file and Redis backends.
package store

import (
	"context"
	"fmt"
	"io"
	"regexp"

	"resumescore/internal/config"
	"resumescore/internal/errors"
	"resumescore/internal/observability"
	"resumescore/internal/resume"
)

// DefaultKey is the key used when a single resume is persisted, as the
// watch command does.
const DefaultKey = "resume-builder-data"

var (
	// ErrNotLoaded means nothing has been saved under the key yet, or a
	// Tracker was asked to save before its first Load.
	ErrNotLoaded = errors.NewStorageError(errors.ErrCodeNotLoaded, "resume not loaded", nil)
	// ErrNotFound is returned when deleting a key that does not exist.
	ErrNotFound = errors.NewStorageError(errors.ErrCodeNotFound, "resume not found", nil)
)

// Store loads and saves resume documents by key.
type Store interface {
	Load(ctx context.Context, key string) (*resume.Document, error)
	Save(ctx context.Context, key string, doc *resume.Document) error
	Delete(ctx context.Context, key string) error
}

// StatsReporter is implemented by stores that expose runtime state.
type StatsReporter interface {
	Stats() map[string]any
}

// HealthChecker is implemented by stores that can report degraded state.
type HealthChecker interface {
	IsHealthy() bool
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,127}$`)

// ValidateKey rejects keys that could escape a file store directory or
// collide with Redis key patterns.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) {
		return errors.NewValidationError(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid resume key '%s'", key), nil)
	}
	return nil
}

// checkSave validates the arguments common to every Save.
func checkSave(key string, doc *resume.Document) error {
	if doc == nil {
		return errors.NewValidationError(errors.ErrCodeInvalidDocument, "cannot save a nil resume", nil)
	}
	return ValidateKey(key)
}

func notLoaded(key string) error {
	return fmt.Errorf("%w: key %q", ErrNotLoaded, key)
}

func notFound(key string) error {
	return fmt.Errorf("%w: key %q", ErrNotFound, key)
}

// New builds the backend named by cfg.Backend, instrumented with obs.
func New(ctx context.Context, cfg config.StoreConfig, obs *observability.Manager, logger *errors.Logger) (Store, error) {
	if logger == nil {
		logger = errors.Discard()
	}

	var (
		backend Store
		err     error
	)
	switch cfg.Backend {
	case "", "memory":
		cfg.Backend = "memory"
		backend = NewMemory()
	case "file":
		backend, err = NewFile(cfg.Path)
	case "redis":
		backend, err = NewRedis(ctx, cfg, logger)
	default:
		err = errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("unknown store backend '%s'", cfg.Backend), nil)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Resume store ready", "backend", cfg.Backend)
	return &instrumented{inner: backend, backend: cfg.Backend, obs: obs}, nil
}

// instrumented records a span and metrics for each call.
type instrumented struct {
	inner   Store
	backend string
	obs     *observability.Manager
}

func (s *instrumented) Load(ctx context.Context, key string) (*resume.Document, error) {
	var doc *resume.Document
	err := s.obs.TrackStoreOperation(ctx, s.backend, "load", func(ctx context.Context) error {
		var err error
		doc, err = s.inner.Load(ctx, key)
		return err
	})
	return doc, err
}

func (s *instrumented) Save(ctx context.Context, key string, doc *resume.Document) error {
	return s.obs.TrackStoreOperation(ctx, s.backend, "save", func(ctx context.Context) error {
		return s.inner.Save(ctx, key, doc)
	})
}

func (s *instrumented) Delete(ctx context.Context, key string) error {
	return s.obs.TrackStoreOperation(ctx, s.backend, "delete", func(ctx context.Context) error {
		return s.inner.Delete(ctx, key)
	})
}

func (s *instrumented) Stats() map[string]any {
	stats := map[string]any{"backend": s.backend}
	if r, ok := s.inner.(StatsReporter); ok {
		for k, v := range r.Stats() {
			stats[k] = v
		}
	}
	return stats
}

func (s *instrumented) IsHealthy() bool {
	if h, ok := s.inner.(HealthChecker); ok {
		return h.IsHealthy()
	}
	return true
}

// Close releases backend connections.
func (s *instrumented) Close() error {
	if c, ok := s.inner.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
