// Package export renders a resume into text, CSV, JSON, HTML and Markdown.
// Exporters are pure: identical input gives byte-identical output.
package export

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"resumescore/internal/errors"
	"resumescore/internal/resume"
)

// Exporter renders one output format.
type Exporter interface {
	Format() string
	Extension() string
	ContentType() string
	Export(doc *resume.Document, opts Options) (string, error)
}

// Registry maps format names to exporters.
type Registry struct {
	exporters map[string]Exporter
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{exporters: make(map[string]Exporter)}
}

// DefaultRegistry returns a registry holding every built-in exporter.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TextExporter{})
	r.Register(CSVExporter{})
	r.Register(JSONExporter{})
	r.Register(HTMLExporter{})
	r.Register(MarkdownExporter{})
	return r
}

// Register adds or replaces the exporter for e.Format().
func (r *Registry) Register(e Exporter) {
	r.exporters[e.Format()] = e
}

// Get looks up an exporter by format name.
func (r *Registry) Get(format string) (Exporter, error) {
	e, ok := r.exporters[format]
	if !ok {
		return nil, errors.NewValidationError(errors.ErrCodeInvalidFormat,
			fmt.Sprintf("unsupported export format '%s'. Supported formats: %v", format, r.Formats()), nil)
	}
	return e, nil
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.exporters))
	for f := range r.exporters {
		formats = append(formats, f)
	}
	slices.Sort(formats)
	return formats
}

// Export renders doc in the named format after validating opts.
func (r *Registry) Export(format string, doc *resume.Document, opts Options) (string, error) {
	e, err := r.Get(format)
	if err != nil {
		return "", err
	}
	opts, err = opts.withDefaults()
	if err != nil {
		return "", err
	}
	return e.Export(doc, opts)
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordChars  = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// Filename builds a download name like "jane_doe_resume_2024-05-01.pdf".
// An empty name falls back to "resume".
func Filename(name, ext string, now time.Time) string {
	if name == "" {
		name = "resume"
	}
	sanitized := strings.ToLower(name)
	sanitized = whitespaceRun.ReplaceAllString(sanitized, "_")
	sanitized = nonWordChars.ReplaceAllString(sanitized, "")
	return fmt.Sprintf("%s_resume_%s.%s", sanitized, now.UTC().Format(time.DateOnly), ext)
}

// contactLine joins the non-empty contact fields with " | ".
func contactLine(info resume.PersonalInfo) string {
	return joinNonEmpty(" | ", info.Email, info.Phone, info.Location)
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func endDate(e resume.Experience) string {
	if e.EndDate == "" {
		return "Present"
	}
	return e.EndDate
}
