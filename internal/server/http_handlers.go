package server

import (
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"resumescore/internal/export"
)

func (s *Server) scoreHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.Observability.Tracer("resumescore.api").Start(r.Context(), "api.score")
	defer span.End()

	doc, err := readDocument(r)
	if err != nil {
		span.RecordError(err)
		s.writeAppError(w, r, "Invalid resume", err)
		return
	}

	out, err := s.Engine.Score(ctx, doc, r.URL.Query().Get("strategy"))
	if err != nil {
		span.RecordError(err)
		s.writeAppError(w, r, "Failed to score resume", err)
		return
	}
	span.SetAttributes(attribute.Int("ats.score", out.Score))
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(r)
	if err != nil {
		s.writeAppError(w, r, "Invalid resume", err)
		return
	}
	writeJSON(w, http.StatusOK, s.Engine.Validate(r.Context(), doc))
}

func (s *Server) suggestionsHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(r)
	if err != nil {
		s.writeAppError(w, r, "Invalid resume", err)
		return
	}
	writeJSON(w, http.StatusOK, s.Engine.Suggest(r.Context(), doc))
}

// exportHandler returns the rendered resume as a download.
func (s *Server) exportHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := s.Observability.Tracer("resumescore.api").Start(r.Context(), "api.export")
	defer span.End()

	doc, err := readDocument(r)
	if err != nil {
		span.RecordError(err)
		s.writeAppError(w, r, "Invalid resume", err)
		return
	}

	q := r.URL.Query()
	format := q.Get("format")
	if format == "" {
		format = defaultExportFormat
	}
	span.SetAttributes(attribute.String("export.format", format))

	rendered, err := s.Engine.Export(ctx, doc, format, export.Options{
		Template: q.Get("template"),
		Theme:    q.Get("theme"),
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		s.writeAppError(w, r, "Failed to export resume", err)
		return
	}

	w.Header().Set("Content-Type", rendered.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", rendered.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(rendered.Content)); err != nil {
		span.RecordError(err)
	}
}

// defaultExportFormat is used when /export has no format parameter.
const defaultExportFormat = "text"

func (s *Server) createResumeHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(r)
	if err != nil {
		s.writeAppError(w, r, "Invalid resume", err)
		return
	}

	id := s.newID()
	if err := s.Store.Save(r.Context(), id, doc); err != nil {
		s.writeAppError(w, r, "Failed to store resume", err)
		return
	}

	location := "/resumes/" + id
	w.Header().Set("Location", location)
	s.Logger.Info("Resume stored", "id", id)
	writeJSON(w, http.StatusCreated, CreatedResponse{ID: id, Location: location})
}

func (s *Server) getResumeHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeAppError(w, r, "Failed to load resume", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// replaceResumeHandler only replaces existing documents; new ones are
// created with POST so the server owns the key space.
func (s *Server) replaceResumeHandler(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	doc, err := readDocument(r)
	if err != nil {
		s.writeAppError(w, r, "Invalid resume", err)
		return
	}

	if _, err := s.Store.Load(r.Context(), id); err != nil {
		s.writeAppError(w, r, "Failed to load resume", err)
		return
	}
	if err := s.Store.Save(r.Context(), id, doc); err != nil {
		s.writeAppError(w, r, "Failed to store resume", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) deleteResumeHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.writeAppError(w, r, "Failed to delete resume", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) scoreStoredHandler(w http.ResponseWriter, r *http.Request) {
	doc, err := s.Store.Load(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeAppError(w, r, "Failed to load resume", err)
		return
	}

	out, err := s.Engine.Score(r.Context(), doc, r.URL.Query().Get("strategy"))
	if err != nil {
		s.writeAppError(w, r, "Failed to score resume", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
