// Package server exposes the resume engine and store over HTTP.
package server

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"resumescore/internal/config"
	"resumescore/internal/engine"
	"resumescore/internal/errors"
	"resumescore/internal/observability"
	"resumescore/internal/store"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// CreatedResponse is returned when a resume is stored.
type CreatedResponse struct {
	ID       string `json:"id"`
	Location string `json:"location"`
}

// Server holds configuration for the HTTP server
type Server struct {
	Host    string
	Port    string
	Version string

	keysMu  sync.RWMutex
	apiKeys map[string]bool

	// KeyWatcher, when set, is reported in /health.
	KeyWatcher *VaultWatcher

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	MaxRequestSize int64

	RateLimit   *config.RateLimitConfig
	RateLimiter *RateLimiter

	Engine        *engine.Service
	Store         store.Store
	Observability *observability.Manager
	Logger        *errors.Logger

	// Banner destination for displayServerInfo.
	Out io.Writer

	startedAt time.Time
	newID     func() string
}

// ServerConfig holds what NewServer needs besides the logger
type ServerConfig struct {
	Version       string
	HTTP          config.ServerConfig
	Engine        *engine.Service
	Store         store.Store
	Observability *observability.Manager
}

// NewServer creates a new Server instance from a ServerConfig struct
func NewServer(cfg ServerConfig, logger *errors.Logger) *Server {
	if logger == nil {
		logger = errors.Discard()
	}

	rateLimit := cfg.HTTP.RateLimit
	var rateLimiter *RateLimiter
	if rateLimit.Enabled {
		rateLimiter = NewRateLimiter(rateLimit.RequestsPerMin, rateLimit.BurstCapacity, logger)
	}

	if cfg.Engine == nil {
		cfg.Engine = engine.NewService(config.Default().App, cfg.Observability, logger)
	}
	st := cfg.Store
	if st == nil {
		st = store.NewMemory()
	}

	s := &Server{
		Host:           cfg.HTTP.Host,
		Port:           cfg.HTTP.Port,
		Version:        cfg.Version,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxRequestSize: cfg.HTTP.MaxRequestSize,
		RateLimit:      &rateLimit,
		RateLimiter:    rateLimiter,
		Engine:         cfg.Engine,
		Store:          st,
		Observability:  cfg.Observability,
		Logger:         logger,
		Out:            os.Stdout,
		startedAt:      time.Now(),
		newID:          uuid.NewString,
	}
	s.SetAPIKeys(cfg.HTTP.APIKeys)
	return s
}

// SetAPIKeys replaces the accepted API keys. An empty set disables
// authentication.
func (s *Server) SetAPIKeys(keys []string) {
	keyMap := make(map[string]bool, len(keys))
	for _, key := range keys {
		if key != "" {
			keyMap[key] = true
		}
	}
	s.keysMu.Lock()
	s.apiKeys = keyMap
	s.keysMu.Unlock()
}

func (s *Server) hasAPIKey(key string) bool {
	s.keysMu.RLock()
	defer s.keysMu.RUnlock()
	return s.apiKeys[key]
}

func (s *Server) apiKeyCount() int {
	s.keysMu.RLock()
	defer s.keysMu.RUnlock()
	return len(s.apiKeys)
}
