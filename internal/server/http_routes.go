package server

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// Handler returns the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.Observability.HTTPMiddleware()(s.requestIDMiddleware(s.setupRoutes()))
}

// setupRoutes configures all HTTP routes and middleware
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	rateLimit := s.rateLimitMiddleware()
	requestLimit := s.requestSizeLimitMiddleware()
	api := func(h http.HandlerFunc) http.HandlerFunc {
		return rateLimit(s.authMiddleware(requestLimit(h)))
	}

	mux.HandleFunc("GET /health", s.healthHandler)
	mux.HandleFunc("GET /stats", s.statsHandler)

	mux.HandleFunc("POST /score", api(s.scoreHandler))
	mux.HandleFunc("POST /validate", api(s.validateHandler))
	mux.HandleFunc("POST /suggestions", api(s.suggestionsHandler))
	mux.HandleFunc("POST /export", api(s.exportHandler))

	mux.HandleFunc("POST /resumes", api(s.createResumeHandler))
	mux.HandleFunc("GET /resumes/{id}", api(s.getResumeHandler))
	mux.HandleFunc("PUT /resumes/{id}", api(s.replaceResumeHandler))
	mux.HandleFunc("DELETE /resumes/{id}", api(s.deleteResumeHandler))
	mux.HandleFunc("GET /resumes/{id}/score", api(s.scoreStoredHandler))

	return mux
}

// requestIDMiddleware echoes X-Request-ID, generating one when absent.
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = s.newID()
		}
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r)
	})
}

// authMiddleware provides API key authentication
func (s *Server) authMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKeyCount() == 0 {
			next(w, r)
			return
		}

		apiKey := extractAPIKey(r)
		if apiKey == "" {
			s.Logger.Info("Authentication failed: missing API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr)
			writeErrorResponse(w, "Missing API key", "X-API-Key header or Authorization Bearer token required", http.StatusUnauthorized)
			return
		}

		if !s.hasAPIKey(apiKey) {
			s.Logger.Info("Authentication failed: invalid API key",
				"endpoint", r.URL.Path,
				"client_ip", r.RemoteAddr,
				"api_key_prefix", maskAPIKey(apiKey))
			writeErrorResponse(w, "Invalid API key", "Unauthorized access", http.StatusUnauthorized)
			return
		}

		s.Logger.Debug("API authentication successful",
			"endpoint", r.URL.Path,
			"api_key_prefix", maskAPIKey(apiKey))

		next(w, r)
	}
}

// extractAPIKey reads X-API-Key, falling back to a Bearer token.
func extractAPIKey(r *http.Request) string {
	if key := r.Header.Get("X-API-Key"); key != "" {
		return key
	}
	if after, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return after
	}
	return ""
}

// requestSizeLimitMiddleware limits the size of incoming requests
func (s *Server) requestSizeLimitMiddleware() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if s.MaxRequestSize > 0 {
				r.Body = http.MaxBytesReader(w, r.Body, s.MaxRequestSize)
			}
			next(w, r)
		}
	}
}

// maskAPIKey masks an API key for logging (shows only first 8 characters)
func maskAPIKey(apiKey string) string {
	if len(apiKey) <= 8 {
		return "****"
	}
	return apiKey[:8] + "****"
}
