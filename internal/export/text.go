package export

import (
	"strings"

	"resumescore/internal/resume"
)

const ruleWidth = 60

// TextExporter renders a plain-text resume suitable for pasting into ATS
// forms.
type TextExporter struct{}

func (TextExporter) Format() string      { return "text" }
func (TextExporter) Extension() string   { return "txt" }
func (TextExporter) ContentType() string { return "text/plain; charset=utf-8" }

func (TextExporter) Export(doc *resume.Document, _ Options) (string, error) {
	var lines []string
	add := func(l ...string) { lines = append(lines, l...) }
	section := func(title string) { add(title, strings.Repeat("-", ruleWidth)) }

	add(strings.ToUpper(doc.PersonalInfo.Name), strings.Repeat("=", ruleWidth))
	add(contactLine(doc.PersonalInfo))
	if links := linksLine(doc.Links); links != "" {
		add(links)
	}
	add("")

	if doc.Summary != "" {
		section("PROFESSIONAL SUMMARY")
		add(doc.Summary, "")
	}

	if len(doc.Experience) > 0 {
		section("EXPERIENCE")
		for _, e := range doc.Experience {
			add(e.Position+" | "+e.Company, e.StartDate+" - "+endDate(e), e.Description, "")
		}
	}

	if len(doc.Education) > 0 {
		section("EDUCATION")
		for _, e := range doc.Education {
			add(e.Degree+" in "+e.Field, e.School, "Graduated: "+e.GraduationDate, "")
		}
	}

	if len(doc.Projects) > 0 {
		section("PROJECTS")
		for _, p := range doc.Projects {
			add(p.Name)
			if len(p.Technologies) > 0 {
				add("Technologies: " + p.TechnologiesText())
			}
			add(p.Description)
			if p.Link != "" {
				add("Link: " + p.Link)
			}
			if p.GithubURL != "" {
				add("GitHub: " + p.GithubURL)
			}
			add("")
		}
	}

	if skills := doc.SkillList(); len(skills) > 0 {
		section("SKILLS")
		add(doc.SkillsText())
	}

	return strings.Join(lines, "\n"), nil
}

func linksLine(l resume.Links) string {
	var linkedin, github string
	if l.LinkedIn != "" {
		linkedin = "LinkedIn: " + l.LinkedIn
	}
	if l.Github != "" {
		github = "GitHub: " + l.Github
	}
	return joinNonEmpty(" | ", linkedin, github)
}
