package resume

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "resumescore/internal/errors"
)

const flatResume = `{
  "personalInfo": {"name": "Jane Doe", "email": "jane@x.com", "phone": "555-123-4567", "location": ""},
  "summary": "Engineer",
  "education": [{"id": "1", "school": "MIT", "degree": "BS", "field": "CS", "graduationDate": "2020"}],
  "experience": [{"id": 17, "company": "Acme", "position": "Dev", "startDate": "2021", "endDate": "", "description": "Built things"}],
  "projects": [{"id": "p1", "name": "Tool", "description": "A tool", "technologies": "Go, , Redis ", "link": "https://x.dev"}],
  "skills": "React, React, Node",
  "links": {"github": "", "linkedin": "https://linkedin.com/in/jane"}
}`

const categorizedResume = `{
  "personalInfo": {"name": "Sam"},
  "projects": [{"id": "1", "name": "Site", "description": "d", "technologies": ["Next.js", "Go"], "liveUrl": "https://site.dev", "githubUrl": "https://github.com/sam/site"}],
  "skills": {"technical": ["Go"], "soft": ["Mentoring"], "tools": ["Docker", ""]}
}`

func TestNormalizeFlatSchema(t *testing.T) {
	doc, err := Normalize([]byte(flatResume))
	require.NoError(t, err)

	assert.Equal(t, SchemaVersion, doc.SchemaVersion)
	assert.Equal(t, "Jane Doe", doc.PersonalInfo.Name)
	assert.Equal(t, "17", doc.Experience[0].ID, "numeric ids are kept as text")
	assert.Equal(t, []string{"Go", "Redis"}, doc.Projects[0].Technologies)
	assert.Equal(t, "https://x.dev", doc.Projects[0].Link)
	assert.Equal(t, []string{"React", "React", "Node"}, doc.Skills.Technical, "duplicates must survive")
	assert.Empty(t, doc.Skills.Soft)
	assert.NotNil(t, doc.Skills.Soft)
}

func TestNormalizeCategorizedSchema(t *testing.T) {
	doc, err := Normalize([]byte(categorizedResume))
	require.NoError(t, err)

	assert.Equal(t, "https://site.dev", doc.Projects[0].Link, "liveUrl maps to link")
	assert.Equal(t, "https://github.com/sam/site", doc.Projects[0].GithubURL)
	assert.Equal(t, []string{"Go", "Mentoring", "Docker"}, doc.SkillList())
	assert.Equal(t, "Go, Mentoring, Docker", doc.SkillsText())
	assert.NotNil(t, doc.Education)
	assert.NotNil(t, doc.Experience)
	assert.Equal(t, "", doc.Summary)
}

func TestNormalizeMissingFieldsDefaultToEmpty(t *testing.T) {
	doc, err := Normalize([]byte(`{}`))
	require.NoError(t, err)

	out, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "null")
	assert.Empty(t, doc.SkillList())
}

func TestNormalizeRejectsStructuralMismatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: "   "},
		{name: "not json", input: "{not json"},
		{name: "top-level array", input: `[]`},
		{name: "name is a number", input: `{"personalInfo": {"name": 42}}`},
		{name: "experience is an object", input: `{"experience": {"company": "x"}}`},
		{name: "skills is a number", input: `{"skills": 3}`},
		{name: "future schema version", input: `{"schemaVersion": 99}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Normalize([]byte(tt.input))
			assert.Nil(t, doc)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "got %v", err)
		})
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	for _, raw := range []string{flatResume, categorizedResume, `{}`} {
		doc := MustNormalize([]byte(raw))

		first, err := json.MarshalIndent(doc, "", "  ")
		require.NoError(t, err)

		again := MustNormalize(first)
		assert.Equal(t, doc, again)

		second, err := json.MarshalIndent(again, "", "  ")
		require.NoError(t, err)
		assert.Equal(t, string(first), string(second))
	}
}

func TestSampleRoundTrips(t *testing.T) {
	sample := Sample()
	out, err := json.Marshal(sample)
	require.NoError(t, err)

	assert.Equal(t, sample, MustNormalize(out))
}

func TestCloneIsDeep(t *testing.T) {
	orig := Sample()
	c := orig.Clone()

	c.Projects[0].Technologies[0] = "Svelte"
	c.Skills.Technical[0] = "Elm"
	c.Experience[0].Company = "Other"

	assert.Equal(t, "React", orig.Projects[0].Technologies[0])
	assert.Equal(t, "React", orig.Skills.Technical[0])
	assert.Equal(t, "Tech Corp", orig.Experience[0].Company)
}
