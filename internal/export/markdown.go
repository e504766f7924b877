package export

import (
	"fmt"
	"strings"

	"resumescore/internal/resume"
)

// MarkdownExporter mirrors the text layout with Markdown headings.
type MarkdownExporter struct{}

func (MarkdownExporter) Format() string      { return "markdown" }
func (MarkdownExporter) Extension() string   { return "md" }
func (MarkdownExporter) ContentType() string { return "text/markdown; charset=utf-8" }

func (MarkdownExporter) Export(doc *resume.Document, _ Options) (string, error) {
	var out strings.Builder

	name := doc.PersonalInfo.Name
	if name == "" {
		name = "Resume"
	}
	out.WriteString("# " + name + "\n\n")

	if contact := contactLine(doc.PersonalInfo); contact != "" {
		out.WriteString(contact + "\n\n")
	}
	var links []string
	if doc.Links.LinkedIn != "" {
		links = append(links, fmt.Sprintf("[LinkedIn](%s)", doc.Links.LinkedIn))
	}
	if doc.Links.Github != "" {
		links = append(links, fmt.Sprintf("[GitHub](%s)", doc.Links.Github))
	}
	if len(links) > 0 {
		out.WriteString(strings.Join(links, " | ") + "\n\n")
	}

	if doc.Summary != "" {
		out.WriteString("## Professional Summary\n\n")
		out.WriteString(doc.Summary + "\n\n")
	}

	if len(doc.Experience) > 0 {
		out.WriteString("## Experience\n\n")
		for _, e := range doc.Experience {
			out.WriteString(fmt.Sprintf("### %s | %s\n\n", e.Position, e.Company))
			out.WriteString(fmt.Sprintf("*%s - %s*\n\n", e.StartDate, endDate(e)))
			if e.Description != "" {
				out.WriteString(e.Description + "\n\n")
			}
		}
	}

	if len(doc.Education) > 0 {
		out.WriteString("## Education\n\n")
		for _, e := range doc.Education {
			out.WriteString(fmt.Sprintf("- **%s in %s**, %s (Graduated: %s)\n", e.Degree, e.Field, e.School, e.GraduationDate))
		}
		out.WriteString("\n")
	}

	if len(doc.Projects) > 0 {
		out.WriteString("## Projects\n\n")
		for _, p := range doc.Projects {
			out.WriteString("### " + p.Name + "\n\n")
			if len(p.Technologies) > 0 {
				out.WriteString("**Technologies:** " + p.TechnologiesText() + "\n\n")
			}
			if p.Description != "" {
				out.WriteString(p.Description + "\n\n")
			}
			if p.Link != "" {
				out.WriteString("Link: " + p.Link + "\n\n")
			}
			if p.GithubURL != "" {
				out.WriteString("Source: " + p.GithubURL + "\n\n")
			}
		}
	}

	if skills := doc.SkillList(); len(skills) > 0 {
		out.WriteString("## Skills\n\n")
		out.WriteString(doc.SkillsText() + "\n")
	}

	return strings.TrimRight(out.String(), "\n") + "\n", nil
}
