package validation

import (
	"math"

	"resumescore/internal/resume"
)

// Report is the aggregated result of Validate.
type Report struct {
	IsValid      bool    `json:"isValid"`
	Errors       []Issue `json:"errors"`
	Completeness int     `json:"completeness"`
}

// Counts returns how many issues carry each severity.
func (r Report) Counts() map[Severity]int {
	counts := map[Severity]int{SeverityError: 0, SeverityWarning: 0, SeverityInfo: 0}
	for _, issue := range r.Errors {
		counts[issue.Severity]++
	}
	return counts
}

// Validate runs every section validator in a fixed order (personal info,
// summary, experience, education, projects, skills, links) and computes
// completeness. The resume is valid when no issue has error severity.
func Validate(doc *resume.Document) Report {
	issues := []Issue{}
	issues = append(issues, ValidatePersonalInfo(doc.PersonalInfo)...)
	issues = append(issues, ValidateSummary(doc.Summary)...)
	issues = append(issues, ValidateExperience(doc.Experience)...)
	issues = append(issues, ValidateEducation(doc.Education)...)
	issues = append(issues, ValidateProjects(doc.Projects)...)
	issues = append(issues, ValidateSkills(doc.SkillList())...)
	issues = append(issues, ValidateLinks(doc.Links)...)

	valid := true
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			valid = false
			break
		}
	}

	return Report{
		IsValid:      valid,
		Errors:       issues,
		Completeness: Completeness(doc),
	}
}

// Completeness measures structural coverage on a 0-100 scale.
func Completeness(doc *resume.Document) int {
	var score float64

	info := doc.PersonalInfo
	if info.Name != "" {
		score += 10
	}
	if IsValidEmail(info.Email) {
		score += 10
	}
	if IsValidPhone(info.Phone) {
		score += 5
	}
	if info.Location != "" {
		score += 5
	}

	if length(doc.Summary) >= minSummaryLength {
		score += 15
	}

	validExperience := 0
	for _, e := range doc.Experience {
		if e.Company != "" && e.Position != "" && e.StartDate != "" {
			validExperience++
		}
	}
	score += math.Min(float64(validExperience)/3*20, 20)

	validEducation := 0
	for _, e := range doc.Education {
		if e.School != "" && e.Degree != "" && e.Field != "" && e.GraduationDate != "" {
			validEducation++
		}
	}
	score += math.Min(float64(validEducation)/2*15, 15)

	switch {
	case len(doc.Projects) >= 2:
		score += 10
	case len(doc.Projects) == 1:
		score += 5
	}

	if len(doc.SkillList()) >= 5 {
		score += 5
	}

	if doc.Links.LinkedIn != "" || doc.Links.Github != "" {
		score += 5
	}

	return clamp(int(math.Round(score)))
}

// Suggestions lists plain-English next steps in a fixed order. Each check
// contributes at most one entry.
func Suggestions(doc *resume.Document) []string {
	suggestions := []string{}

	if doc.PersonalInfo.Email == "" {
		suggestions = append(suggestions, "Add your email address")
	}
	if doc.PersonalInfo.Phone == "" {
		suggestions = append(suggestions, "Add your phone number")
	}
	if doc.PersonalInfo.Location == "" {
		suggestions = append(suggestions, "Add your location")
	}

	switch len(doc.Experience) {
	case 0:
		suggestions = append(suggestions, "Add at least one work experience entry")
	case 1:
		suggestions = append(suggestions, "Add more work experience entries for better visibility")
	}

	if len(doc.Education) == 0 {
		suggestions = append(suggestions, "Add your education history")
	}

	switch len(doc.Projects) {
	case 0:
		suggestions = append(suggestions, "Add projects to showcase your work")
	case 1:
		suggestions = append(suggestions, "Add at least 2 projects for better impact")
	}

	skills := len(doc.SkillList())
	switch {
	case skills == 0:
		suggestions = append(suggestions, "Add your technical and professional skills")
	case skills < 5:
		suggestions = append(suggestions, "Add more skills (aim for 5+ skills)")
	}

	if doc.Links.LinkedIn == "" && doc.Links.Github == "" {
		suggestions = append(suggestions, "Link your LinkedIn or GitHub profile")
	}

	return suggestions
}

func clamp(score int) int {
	return max(0, min(100, score))
}
