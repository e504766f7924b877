package export

import (
	"strings"

	"resumescore/internal/resume"
)

// CSVExporter renders a Field,Value sheet with tabular blocks for
// experience, education and projects.
type CSVExporter struct{}

func (CSVExporter) Format() string      { return "csv" }
func (CSVExporter) Extension() string   { return "csv" }
func (CSVExporter) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVExporter) Export(doc *resume.Document, _ Options) (string, error) {
	var rows []string
	row := func(cells ...string) {
		escaped := make([]string, len(cells))
		for i, c := range cells {
			escaped[i] = escapeCSV(c)
		}
		rows = append(rows, strings.Join(escaped, ","))
	}
	separator := func() { row("", "") }
	heading := func(title string) { row(title, "") }

	row("Field", "Value")
	row("Name", doc.PersonalInfo.Name)
	row("Email", doc.PersonalInfo.Email)
	row("Phone", doc.PersonalInfo.Phone)
	row("Location", doc.PersonalInfo.Location)
	row("LinkedIn", doc.Links.LinkedIn)
	row("GitHub", doc.Links.Github)

	separator()
	heading("PROFESSIONAL SUMMARY")
	row("", doc.Summary)

	separator()
	heading("EXPERIENCE")
	row("Company", "Position", "Start Date", "End Date", "Description")
	for _, e := range doc.Experience {
		row(e.Company, e.Position, e.StartDate, endDate(e), e.Description)
	}

	separator()
	heading("EDUCATION")
	row("School", "Degree", "Field", "Graduation Date")
	for _, e := range doc.Education {
		row(e.School, e.Degree, e.Field, e.GraduationDate)
	}

	separator()
	heading("PROJECTS")
	row("Name", "Description", "Technologies", "Link")
	for _, p := range doc.Projects {
		row(p.Name, p.Description, p.TechnologiesText(), p.Link)
	}

	separator()
	heading("SKILLS")
	row("", doc.SkillsText())

	return strings.Join(rows, "\n"), nil
}

// escapeCSV quotes a cell holding a comma, quote or newline and doubles
// any embedded quotes.
func escapeCSV(v string) string {
	if strings.ContainsAny(v, ",\"\n") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}
