package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"resumescore/internal/errors"
	"resumescore/internal/resume"
	"resumescore/internal/store"
)

// healthHandler reports the service and store state. A store whose circuit
// breaker is open makes the service degraded.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "resumescore",
		"version": s.Version,
	}

	status := http.StatusOK
	storeStatus := map[string]any{"healthy": true}
	if h, ok := s.Store.(store.HealthChecker); ok && !h.IsHealthy() {
		storeStatus["healthy"] = false
		response["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}
	response["store"] = storeStatus
	if s.KeyWatcher != nil {
		response["vault_watcher"] = s.KeyWatcher.Status()
	}

	writeJSON(w, status, response)
}

// statsHandler provides server statistics including rate limiting info
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"service":        "resumescore",
		"version":        s.Version,
		"uptime_seconds": int(time.Since(s.startedAt).Seconds()),
		"server": map[string]any{
			"max_request_size_bytes": s.MaxRequestSize,
			"auth_enabled":           s.apiKeyCount() > 0,
		},
		"engine": map[string]any{
			"strategies": s.Engine.Strategies(),
			"formats":    s.Engine.Formats(),
		},
	}

	if reporter, ok := s.Store.(store.StatsReporter); ok {
		response["store"] = reporter.Stats()
	}

	if s.RateLimiter != nil {
		response["rate_limiting"] = s.RateLimiter.GetStats()
	} else {
		response["rate_limiting"] = map[string]any{"enabled": false}
	}

	writeJSON(w, http.StatusOK, response)
}

// readDocument decodes and normalizes a resume request body.
func readDocument(r *http.Request) (*resume.Document, error) {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err != nil || mediaType != "application/json" {
			return nil, errors.NewValidationError(errors.ErrCodeInvalidRequest,
				"content-type must be application/json", err)
		}
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if stderrors.As(err, &maxBytesErr) {
			return nil, errors.NewValidationError("REQUEST_TOO_LARGE",
				fmt.Sprintf("request body too large (limit is %d bytes)", maxBytesErr.Limit), err)
		}
		return nil, errors.NewIOError(errors.ErrCodeInvalidRequest, "failed to read request body", err)
	}

	return resume.Normalize(body)
}

// statusFor maps an error to an HTTP status.
func statusFor(err error) int {
	var appErr *errors.AppError
	switch {
	case stderrors.Is(err, store.ErrNotLoaded), stderrors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case !stderrors.As(err, &appErr):
		return http.StatusInternalServerError
	case appErr.Code == "REQUEST_TOO_LARGE":
		return http.StatusRequestEntityTooLarge
	case appErr.Type == errors.ErrorTypeValidation:
		return http.StatusBadRequest
	case appErr.Type == errors.ErrorTypeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeAppError logs err and writes it with the mapped status.
func (s *Server) writeAppError(w http.ResponseWriter, r *http.Request, summary string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.Logger.LogError(err, summary, "endpoint", r.URL.Path, "request_id", w.Header().Get("X-Request-ID"))
	} else {
		s.Logger.Debug(summary, "endpoint", r.URL.Path, "error", err)
	}

	resp := ErrorResponse{Error: summary, Message: err.Error()}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		resp.Code = appErr.Code
		resp.Message = appErr.Message
		if fields, ok := appErr.Context["fields"]; ok {
			writeJSON(w, status, map[string]any{
				"error": resp.Error, "message": resp.Message, "code": resp.Code, "fields": fields,
			})
			return
		}
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErrorResponse writes a standardized error response
func writeErrorResponse(w http.ResponseWriter, summary, message string, statusCode int) {
	writeJSON(w, statusCode, ErrorResponse{Error: summary, Message: message})
}
