package export

import (
	"fmt"
	"slices"

	"resumescore/internal/errors"
)

const (
	TemplateClassic = "classic"
	TemplateModern  = "modern"
	TemplateMinimal = "minimal"

	DefaultTemplate = TemplateClassic
	DefaultTheme    = "teal"
)

// Options carries the visual settings used by the HTML exporter. Other
// formats ignore them.
type Options struct {
	Template string
	Theme    string
}

// Theme is a named accent palette.
type Theme struct {
	Name    string
	Primary string
	Light   string
}

var themes = map[string]Theme{
	"teal":     {Name: "teal", Primary: "#0d9488", Light: "#ccfbf1"},
	"navy":     {Name: "navy", Primary: "#1e3a8a", Light: "#dbeafe"},
	"burgundy": {Name: "burgundy", Primary: "#881337", Light: "#ffe4e6"},
	"forest":   {Name: "forest", Primary: "#166534", Light: "#dcfce7"},
	"charcoal": {Name: "charcoal", Primary: "#374151", Light: "#f3f4f6"},
}

var templates = []string{TemplateClassic, TemplateModern, TemplateMinimal}

// Templates lists the layout identifiers.
func Templates() []string {
	return slices.Clone(templates)
}

// Themes lists the colour theme names in sorted order.
func Themes() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// LookupTheme returns the palette for name.
func LookupTheme(name string) (Theme, bool) {
	t, ok := themes[name]
	return t, ok
}

func (o Options) withDefaults() (Options, error) {
	if o.Template == "" {
		o.Template = DefaultTemplate
	}
	if o.Theme == "" {
		o.Theme = DefaultTheme
	}
	if !slices.Contains(templates, o.Template) {
		return o, errors.NewValidationError(errors.ErrCodeUnknownTemplate,
			fmt.Sprintf("unknown template '%s'. Supported templates: %v", o.Template, templates), nil)
	}
	if _, ok := themes[o.Theme]; !ok {
		return o, errors.NewValidationError(errors.ErrCodeUnknownTheme,
			fmt.Sprintf("unknown theme '%s'. Supported themes: %v", o.Theme, Themes()), nil)
	}
	return o, nil
}
