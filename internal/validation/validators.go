// Package validation checks a resume section by section and measures how
// complete it is. Problems with the resume are returned as Issues, never
// as errors.
package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"resumescore/internal/heuristics"
	"resumescore/internal/resume"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is one finding against a field path such as "experience[0].company".
type Issue struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

const (
	maxNameLength        = 100
	maxLocationLength    = 100
	minSummaryLength     = 40
	maxTextLength        = 1000
	minDescriptionLength = 10
	minSkills            = 3
	maxSkills            = 50
	maxSkillLength       = 50
	minPhoneDigits       = 10
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[\d\s\-+()]+$`)
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^(January|February|March|April|May|June|July|August|September|October|November|December)\s\d{4}$`),
		regexp.MustCompile(`^\d{4}$`),
		regexp.MustCompile(`^(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s\d{4}$`),
	}
)

func IsValidEmail(email string) bool {
	return email != "" && emailPattern.MatchString(email)
}

// IsValidPhone accepts digits, spaces, dashes, plus signs and parentheses,
// with at least ten digits.
func IsValidPhone(phone string) bool {
	if phone == "" || !phonePattern.MatchString(phone) {
		return false
	}
	digits := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= minPhoneDigits
}

// IsValidURL reports whether s parses as an absolute URL. Hierarchical
// schemes must carry a host.
func IsValidURL(s string) bool {
	if s == "" {
		return false
	}
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil || u.Scheme == "" {
		return false
	}
	if u.Opaque == "" && u.Host == "" {
		return false
	}
	return true
}

// IsValidDate accepts YYYY-MM-DD, "Month YYYY", "Mon YYYY" and "YYYY".
func IsValidDate(date string) bool {
	if date == "" {
		return false
	}
	for _, p := range datePatterns {
		if p.MatchString(date) {
			return true
		}
	}
	return false
}

func ValidatePersonalInfo(info resume.PersonalInfo) []Issue {
	var issues []Issue
	const field = "personalInfo"

	switch {
	case strings.TrimSpace(info.Name) == "":
		issues = append(issues, errorIssue(field+".name", "Name is required"))
	case length(info.Name) > maxNameLength:
		issues = append(issues, errorIssue(field+".name", "Name is too long (max 100 characters)"))
	case heuristics.IsLikelySpam(info.Name):
		issues = append(issues, warning(field+".name", "Name appears to contain invalid characters"))
	}

	if info.Email != "" && !IsValidEmail(info.Email) {
		issues = append(issues, errorIssue(field+".email", "Invalid email format"))
	}
	if info.Phone != "" && !IsValidPhone(info.Phone) {
		issues = append(issues, warning(field+".phone", "Phone number should contain at least 10 digits"))
	}
	if length(info.Location) > maxLocationLength {
		issues = append(issues, errorIssue(field+".location", "Location is too long (max 100 characters)"))
	}
	return issues
}

// ValidateSummary checks the optional summary. A blank summary has no issues.
func ValidateSummary(summary string) []Issue {
	if summary == "" {
		return nil
	}

	var issues []Issue
	if length(summary) < minSummaryLength {
		issues = append(issues, warning("summary", "Summary is too short (recommend 40+ characters)"))
	}
	if length(summary) > maxTextLength {
		issues = append(issues, errorIssue("summary", "Summary is too long (max 1000 characters)"))
	}
	if heuristics.IsLikelySpam(summary) {
		issues = append(issues, warning("summary", "Summary appears to contain invalid content"))
	}
	return issues
}

func ValidateExperience(entries []resume.Experience) []Issue {
	var issues []Issue
	for i, exp := range entries {
		prefix := fmt.Sprintf("experience[%d]", i)

		if isBlank(exp.Company) {
			issues = append(issues, errorIssue(prefix+".company", "Company name is required"))
		}
		if isBlank(exp.Position) {
			issues = append(issues, errorIssue(prefix+".position", "Position title is required"))
		}

		if exp.StartDate == "" {
			issues = append(issues, errorIssue(prefix+".startDate", "Start date is required"))
		} else if !IsValidDate(exp.StartDate) {
			issues = append(issues, warning(prefix+".startDate", "Invalid date format"))
		}
		if exp.EndDate != "" && !IsValidDate(exp.EndDate) {
			issues = append(issues, warning(prefix+".endDate", "Invalid date format"))
		}

		if exp.Description == "" {
			continue
		}
		if length(exp.Description) < minDescriptionLength {
			issues = append(issues, warning(prefix+".description", "Description is too short (recommend 10+ characters)"))
		}
		if length(exp.Description) > maxTextLength {
			issues = append(issues, errorIssue(prefix+".description", "Description is too long (max 1000 characters)"))
		}
		if heuristics.IsLikelySpam(exp.Description) {
			issues = append(issues, warning(prefix+".description", "Description appears to contain invalid content"))
		}
	}
	return issues
}

func ValidateEducation(entries []resume.Education) []Issue {
	var issues []Issue
	for i, edu := range entries {
		prefix := fmt.Sprintf("education[%d]", i)

		if isBlank(edu.School) {
			issues = append(issues, errorIssue(prefix+".school", "School name is required"))
		}
		if isBlank(edu.Degree) {
			issues = append(issues, errorIssue(prefix+".degree", "Degree is required"))
		}
		if isBlank(edu.Field) {
			issues = append(issues, errorIssue(prefix+".field", "Field of study is required"))
		}

		if edu.GraduationDate == "" {
			issues = append(issues, errorIssue(prefix+".graduationDate", "Graduation date is required"))
		} else if !IsValidDate(edu.GraduationDate) {
			issues = append(issues, warning(prefix+".graduationDate", "Invalid date format"))
		}
	}
	return issues
}

func ValidateProjects(entries []resume.Project) []Issue {
	var issues []Issue
	for i, proj := range entries {
		prefix := fmt.Sprintf("projects[%d]", i)

		if isBlank(proj.Name) {
			issues = append(issues, errorIssue(prefix+".name", "Project name is required"))
		}

		if isBlank(proj.Description) {
			issues = append(issues, errorIssue(prefix+".description", "Project description is required"))
		} else if length(proj.Description) < minDescriptionLength {
			issues = append(issues, warning(prefix+".description", "Description is too short (recommend 10+ characters)"))
		}

		if proj.Link != "" && !IsValidURL(proj.Link) {
			issues = append(issues, warning(prefix+".link", "Invalid URL format"))
		}
		if proj.GithubURL != "" && !IsValidURL(proj.GithubURL) {
			issues = append(issues, warning(prefix+".githubUrl", "Invalid URL format"))
		}

		if proj.Description != "" && heuristics.IsLikelySpam(proj.Description) {
			issues = append(issues, warning(prefix+".description", "Description appears to contain invalid content"))
		}
	}
	return issues
}

// ValidateSkills checks the flattened skill list. No skills means no
// issues since the section is optional.
func ValidateSkills(skills []string) []Issue {
	if len(skills) == 0 {
		return nil
	}

	var issues []Issue
	if len(skills) < minSkills {
		issues = append(issues, warning("skills", "Add at least 3 skills for better ATS compatibility"))
	}
	if len(skills) > maxSkills {
		issues = append(issues, warning("skills", "Too many skills (max 50 recommended)"))
	}
	for i, skill := range skills {
		if length(skill) > maxSkillLength {
			issues = append(issues, warning(fmt.Sprintf("skills[%d]", i), "Skill name is too long (max 50 characters)"))
		}
	}
	return issues
}

func ValidateLinks(links resume.Links) []Issue {
	var issues []Issue
	if links.LinkedIn != "" && !IsValidURL(links.LinkedIn) {
		issues = append(issues, warning("links.linkedin", "Invalid LinkedIn URL"))
	}
	if links.Github != "" && !IsValidURL(links.Github) {
		issues = append(issues, warning("links.github", "Invalid GitHub URL"))
	}
	return issues
}

func errorIssue(field, message string) Issue {
	return Issue{Field: field, Message: message, Severity: SeverityError}
}

func warning(field, message string) Issue {
	return Issue{Field: field, Message: message, Severity: SeverityWarning}
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
