package export

import (
	"embed"
	"html/template"
	"strings"

	"resumescore/internal/errors"
	"resumescore/internal/resume"
)

//go:embed templates/resume.html.tmpl
var templateFS embed.FS

var htmlTemplate = template.Must(template.ParseFS(templateFS, "templates/resume.html.tmpl"))

// HTMLExporter renders a self-contained styled page. Every user-supplied
// value passes through html/template escaping.
type HTMLExporter struct{}

func (HTMLExporter) Format() string      { return "html" }
func (HTMLExporter) Extension() string   { return "html" }
func (HTMLExporter) ContentType() string { return "text/html; charset=utf-8" }

type htmlTheme struct {
	Name    string
	Primary template.CSS
}

type htmlStyle struct {
	FontFamily      template.CSS
	HeaderAlign     template.CSS
	HeadingColor    template.CSS
	TagBackground   template.CSS
	TitleRule       bool
	UppercaseTitles bool
}

type htmlView struct {
	Doc      *resume.Document
	Contact  string
	Skills   []string
	Template string
	Theme    htmlTheme
	Style    htmlStyle
}

// layoutStyle maps a template id to its typography. Colours that depend
// on the theme are filled in by the caller.
func layoutStyle(templateID string, theme Theme) htmlStyle {
	switch templateID {
	case TemplateModern:
		return htmlStyle{
			FontFamily:      "'Inter', 'Helvetica Neue', Arial, sans-serif",
			HeaderAlign:     "left",
			HeadingColor:    template.CSS(theme.Primary),
			TagBackground:   template.CSS(theme.Light),
			TitleRule:       true,
			UppercaseTitles: true,
		}
	case TemplateMinimal:
		return htmlStyle{
			FontFamily:    "Georgia, 'Times New Roman', serif",
			HeaderAlign:   "left",
			HeadingColor:  "#1a1a1a",
			TagBackground: "#f5f5f5",
		}
	default:
		return htmlStyle{
			FontFamily:    "'Segoe UI', Tahoma, Geneva, Verdana, sans-serif",
			HeaderAlign:   "center",
			HeadingColor:  "#1a1a1a",
			TagBackground: "#f0f0f0",
			TitleRule:     true,
		}
	}
}

func (HTMLExporter) Export(doc *resume.Document, opts Options) (string, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return "", err
	}
	theme, _ := LookupTheme(opts.Theme)

	view := htmlView{
		Doc:      doc,
		Contact:  contactLine(doc.PersonalInfo),
		Skills:   doc.SkillList(),
		Template: opts.Template,
		Theme:    htmlTheme{Name: theme.Name, Primary: template.CSS(theme.Primary)},
		Style:    layoutStyle(opts.Template, theme),
	}

	var b strings.Builder
	if err := htmlTemplate.Execute(&b, view); err != nil {
		return "", errors.NewInternalError("EXPORT_FAILED", "failed to render HTML resume", err)
	}
	return b.String(), nil
}
