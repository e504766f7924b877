package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resumescore/internal/resume"
)

func janeDoe() *resume.Document {
	doc := resume.Empty()
	doc.PersonalInfo = resume.PersonalInfo{Name: "Jane Doe", Email: "jane@x.com", Phone: "555-123-4567"}
	doc.Education = []resume.Education{
		{ID: "e1", School: "MIT", Degree: "BS", Field: "CS", GraduationDate: "2020"},
	}
	doc.Experience = []resume.Experience{
		{ID: "x1", Company: "Acme", Position: "Engineer", StartDate: "2021", Description: "Built a system, increasing throughput by 40%"},
	}
	return doc
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) bool
		in   string
		want bool
	}{
		{"email ok", IsValidEmail, "jane@x.com", true},
		{"email missing tld", IsValidEmail, "jane@x", false},
		{"email with space", IsValidEmail, "ja ne@x.com", false},
		{"email empty", IsValidEmail, "", false},
		{"phone ten digits", IsValidPhone, "555-123-4567", true},
		{"phone formatted", IsValidPhone, "+1 (555) 123-4567", true},
		{"phone short", IsValidPhone, "555-1234", false},
		{"phone letters", IsValidPhone, "555-123-456x7", false},
		{"url https", IsValidURL, "https://github.com/jane", true},
		{"url mailto", IsValidURL, "mailto:jane@x.com", true},
		{"url bare host", IsValidURL, "github.com/jane", false},
		{"url scheme only", IsValidURL, "http://", false},
		{"url prose", IsValidURL, "not a url", false},
		{"date iso", IsValidDate, "2021-03-01", true},
		{"date month", IsValidDate, "January 2020", true},
		{"date short month", IsValidDate, "Jan 2020", true},
		{"date year", IsValidDate, "2020", true},
		{"date present", IsValidDate, "Present", false},
		{"date slash", IsValidDate, "03/2020", false},
		{"date lowercase month", IsValidDate, "jan 2020", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.fn(tt.in))
		})
	}
}

func TestValidatePersonalInfo(t *testing.T) {
	tests := []struct {
		name string
		info resume.PersonalInfo
		want []Issue
	}{
		{
			name: "blank name",
			info: resume.PersonalInfo{Name: "   "},
			want: []Issue{{"personalInfo.name", "Name is required", SeverityError}},
		},
		{
			name: "long name skips spam check",
			info: resume.PersonalInfo{Name: strings.Repeat("a", 101)},
			want: []Issue{{"personalInfo.name", "Name is too long (max 100 characters)", SeverityError}},
		},
		{
			name: "two-word name is flagged by the coherence rule",
			info: resume.PersonalInfo{Name: "Jane Doe"},
			want: []Issue{{"personalInfo.name", "Name appears to contain invalid characters", SeverityWarning}},
		},
		{
			name: "bad email phone and location",
			info: resume.PersonalInfo{
				Name:     "Jane Q Public",
				Email:    "nope",
				Phone:    "12345",
				Location: strings.Repeat("x", 101),
			},
			want: []Issue{
				{"personalInfo.email", "Invalid email format", SeverityError},
				{"personalInfo.phone", "Phone number should contain at least 10 digits", SeverityWarning},
				{"personalInfo.location", "Location is too long (max 100 characters)", SeverityError},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidatePersonalInfo(tt.info))
		})
	}
}

func TestValidateSummary(t *testing.T) {
	assert.Empty(t, ValidateSummary(""))

	issues := ValidateSummary("Too short but fine 2024")
	require.Len(t, issues, 1)
	assert.Equal(t, "Summary is too short (recommend 40+ characters)", issues[0].Message)

	long := strings.Repeat("word ", 201)
	issues = ValidateSummary(long)
	require.Len(t, issues, 2)
	assert.Equal(t, Issue{"summary", "Summary is too long (max 1000 characters)", SeverityError}, issues[0])
	assert.Equal(t, "Summary appears to contain invalid content", issues[1].Message, "repetition ratio exceeds 0.7")
}

func TestValidateExperience(t *testing.T) {
	issues := ValidateExperience([]resume.Experience{
		{Company: " ", Position: "", StartDate: "", EndDate: "someday", Description: "short 1"},
		{Company: "Acme", Position: "Dev", StartDate: "Spring 2020", Description: "Shipped the billing service in 2021"},
	})

	want := []Issue{
		{"experience[0].company", "Company name is required", SeverityError},
		{"experience[0].position", "Position title is required", SeverityError},
		{"experience[0].startDate", "Start date is required", SeverityError},
		{"experience[0].endDate", "Invalid date format", SeverityWarning},
		{"experience[0].description", "Description is too short (recommend 10+ characters)", SeverityWarning},
		{"experience[1].startDate", "Invalid date format", SeverityWarning},
	}
	assert.Equal(t, want, issues)
}

func TestValidateEducation(t *testing.T) {
	issues := ValidateEducation([]resume.Education{
		{School: "", Degree: "", Field: "", GraduationDate: ""},
		{School: "MIT", Degree: "BS", Field: "CS", GraduationDate: "Summer 2020"},
	})

	want := []Issue{
		{"education[0].school", "School name is required", SeverityError},
		{"education[0].degree", "Degree is required", SeverityError},
		{"education[0].field", "Field of study is required", SeverityError},
		{"education[0].graduationDate", "Graduation date is required", SeverityError},
		{"education[1].graduationDate", "Invalid date format", SeverityWarning},
	}
	assert.Equal(t, want, issues)
}

func TestValidateProjectsSpamIsWarning(t *testing.T) {
	issues := ValidateProjects([]resume.Project{
		{Name: "Thing", Description: "asdkj qwoeiur $$$$ !!!! @@@@", Link: "github.com/x"},
	})

	want := []Issue{
		{"projects[0].link", "Invalid URL format", SeverityWarning},
		{"projects[0].description", "Description appears to contain invalid content", SeverityWarning},
	}
	assert.Equal(t, want, issues)
}

func TestValidateProjectsRequiredFields(t *testing.T) {
	issues := ValidateProjects([]resume.Project{{Name: "", Description: ""}, {Name: "X", Description: "tiny 1"}})

	want := []Issue{
		{"projects[0].name", "Project name is required", SeverityError},
		{"projects[0].description", "Project description is required", SeverityError},
		{"projects[1].description", "Description is too short (recommend 10+ characters)", SeverityWarning},
	}
	assert.Equal(t, want, issues)
}

func TestValidateSkills(t *testing.T) {
	assert.Empty(t, ValidateSkills(nil))

	issues := ValidateSkills([]string{"React", "React"})
	assert.Equal(t, []Issue{{"skills", "Add at least 3 skills for better ATS compatibility", SeverityWarning}}, issues)

	many := make([]string, 51)
	for i := range many {
		many[i] = "go"
	}
	many[4] = strings.Repeat("k", 51)
	issues = ValidateSkills(many)
	assert.Equal(t, []Issue{
		{"skills", "Too many skills (max 50 recommended)", SeverityWarning},
		{"skills[4]", "Skill name is too long (max 50 characters)", SeverityWarning},
	}, issues)
}

func TestValidateLinks(t *testing.T) {
	issues := ValidateLinks(resume.Links{LinkedIn: "linkedin", Github: "https://github.com/jane"})
	assert.Equal(t, []Issue{{"links.linkedin", "Invalid LinkedIn URL", SeverityWarning}}, issues)
}

func TestValidateEmptyResume(t *testing.T) {
	report := Validate(resume.Empty())

	assert.False(t, report.IsValid)
	assert.Equal(t, 0, report.Completeness)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, "personalInfo.name", report.Errors[0].Field)
}

func TestValidateJaneDoe(t *testing.T) {
	report := Validate(janeDoe())

	assert.True(t, report.IsValid, "only warnings expected: %+v", report.Errors)
	// 10 + 10 + 5 for personal info, 20/3 for one experience, 15/2 for one education.
	assert.Equal(t, 39, report.Completeness)
	assert.Equal(t, 1, report.Counts()[SeverityWarning])
}

func TestValidateIssueOrder(t *testing.T) {
	doc := resume.Empty()
	doc.PersonalInfo.Email = "bad"
	doc.Summary = "short"
	doc.Experience = []resume.Experience{{}}
	doc.Education = []resume.Education{{}}
	doc.Projects = []resume.Project{{}}
	doc.Skills.Technical = []string{"Go"}
	doc.Links.Github = "nope"

	report := Validate(doc)

	var sections []string
	for _, issue := range report.Errors {
		section := issue.Field
		if i := strings.IndexAny(section, ".["); i >= 0 {
			section = section[:i]
		}
		if len(sections) == 0 || sections[len(sections)-1] != section {
			sections = append(sections, section)
		}
	}
	assert.Equal(t, []string{"personalInfo", "summary", "experience", "education", "projects", "skills", "links"}, sections)
}

func TestCompleteness(t *testing.T) {
	full := resume.Sample()
	// Sample lacks only a third experience entry and a second education entry.
	assert.Equal(t, 30+15+13+8+10+5+5, Completeness(full))

	doc := resume.Sample()
	doc.Experience = append(doc.Experience, doc.Experience[0])
	doc.Education = append(doc.Education, doc.Education[0])
	assert.Equal(t, 100, Completeness(doc))

	doc.Experience = append(doc.Experience, doc.Experience...)
	assert.Equal(t, 100, Completeness(doc), "experience is capped at 20")
}

func TestSuggestions(t *testing.T) {
	assert.Equal(t, []string{
		"Add your email address",
		"Add your phone number",
		"Add your location",
		"Add at least one work experience entry",
		"Add your education history",
		"Add projects to showcase your work",
		"Add your technical and professional skills",
		"Link your LinkedIn or GitHub profile",
	}, Suggestions(resume.Empty()))

	doc := janeDoe()
	doc.Projects = []resume.Project{{Name: "p"}}
	doc.Skills.Technical = []string{"React", "React", "Node"}
	assert.Equal(t, []string{
		"Add your location",
		"Add more work experience entries for better visibility",
		"Add at least 2 projects for better impact",
		"Add more skills (aim for 5+ skills)",
		"Link your LinkedIn or GitHub profile",
	}, Suggestions(doc))

	assert.Empty(t, Suggestions(resume.Sample()))
}
