package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "resumescore/internal/errors"
	"resumescore/internal/resume"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestCompactEmptyResume(t *testing.T) {
	r := Compact{}.Score(resume.Empty())

	assert.Equal(t, 0, r.Score)
	assert.Equal(t, StrategyCompact, r.Strategy)
	assert.Equal(t, []string{
		"Write a stronger summary (40–120 words).",
		"Add at least 2 projects.",
		"Add at least 1 work experience entry.",
	}, r.Suggestions)
	assert.Equal(t, map[string]int{
		"summary": 0, "projects": 0, "experience": 0, "skills": 0,
		"links": 0, "metrics": 0, "education": 0,
	}, r.Details)
}

func TestCompactSample(t *testing.T) {
	r := Compact{}.Score(resume.Sample())

	// Every rule passes except the 20-word summary.
	assert.Equal(t, 65, r.Score)
	assert.Equal(t, []string{"Write a stronger summary (40–120 words)."}, r.Suggestions)
	assert.Equal(t, 15, r.Details["metrics"])
	assert.Equal(t, "Getting There", r.Label())
}

func TestCompactSummaryWordBoundaries(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{39, 0},
		{40, 15},
		{120, 15},
		{121, 0},
	}

	for _, tt := range tests {
		doc := resume.Empty()
		doc.Summary = words(tt.words)
		assert.Equal(t, tt.want, Compact{}.Score(doc).Details["summary"], "%d words", tt.words)
	}
}

func TestCompactSkillSuggestionInterpolatesCount(t *testing.T) {
	doc := resume.Sample()
	doc.Summary = words(50)
	doc.Skills = resume.SkillSet{Technical: []string{"React", "React", "Node"}}

	r := Compact{}.Score(doc)
	assert.Equal(t, []string{"Add more skills (target 8+, currently 3)."}, r.Suggestions)
}

func TestCompactMetricsFromProjects(t *testing.T) {
	doc := resume.Empty()
	doc.Projects = []resume.Project{{Name: "p", Description: "Scaled to 5k users"}}
	assert.Equal(t, 15, Compact{}.Score(doc).Details["metrics"])
}

func TestCompactEducationNeedsAllFields(t *testing.T) {
	doc := resume.Empty()
	doc.Education = []resume.Education{{School: "MIT", Degree: "BS", Field: "CS"}}
	r := Compact{}.Score(doc)
	assert.Equal(t, 0, r.Details["education"])
	for _, s := range r.Suggestions {
		assert.NotContains(t, strings.ToLower(s), "education")
	}

	doc.Education[0].GraduationDate = "2020"
	assert.Equal(t, 10, Compact{}.Score(doc).Details["education"])
}

func TestCompactAllRulesPass(t *testing.T) {
	doc := resume.Sample()
	doc.Summary = words(60)

	r := Compact{}.Score(doc)
	assert.Equal(t, 80, r.Score)
	assert.Empty(t, r.Suggestions)
	assert.Equal(t, "Strong Resume", r.Label())
}

func TestDetailedEmptyResume(t *testing.T) {
	r := Detailed{}.Score(resume.Empty())

	assert.Equal(t, 0, r.Score)
	assert.Equal(t, []string{
		"Add your full name (+10 points)",
		"Add an email address (+10 points)",
		"Add a professional summary >50 characters (+10 points)",
		"Use action verbs in your summary (built, led, designed) (+10 points)",
		"Add at least one work experience entry (+15 points)",
		"Add education details (+10 points)",
		"Add more skills (need 5+, currently 0) (+10 points)",
		"Add a project to showcase your work (+10 points)",
		"Add a phone number (+5 points)",
	}, r.Suggestions)
	assert.Len(t, r.Details, 11)
	assert.Equal(t, "Needs Work", r.Label())
}

func TestDetailedSample(t *testing.T) {
	r := Detailed{}.Score(resume.Sample())

	assert.Equal(t, 75, r.Score)
	assert.Equal(t, []string{
		"Use action verbs in your summary (built, led, designed) (+10 points)",
		"Add bullet points in your experience descriptions (+15 points)",
	}, r.Suggestions)
	assert.Equal(t, "Good", r.Label())
}

func TestDetailedFullMarks(t *testing.T) {
	doc := resume.Sample()
	doc.Summary = "Engineer who built and scaled payment platforms across three continents."
	doc.Experience[0].Description = "- Led frontend architecture\n- Improved performance by 40%"

	r := Detailed{}.Score(doc)
	assert.Equal(t, 100, r.Score)
	assert.Empty(t, r.Suggestions)
	assert.Equal(t, "Excellent", r.Label())
}

func TestDetailedWhitespaceIsNotPresent(t *testing.T) {
	doc := resume.Empty()
	doc.PersonalInfo.Name = "   "
	doc.Links.Github = " "

	r := Detailed{}.Score(doc)
	assert.Equal(t, 0, r.Details["name"])
	assert.Equal(t, 0, r.Details["github"])
}

func TestProjectsSubScoreIsMonotonic(t *testing.T) {
	for _, s := range []Strategy{Compact{}, Detailed{}} {
		doc := resume.Empty()
		doc.Projects = []resume.Project{{ID: "1", Name: "one"}}
		before := s.Score(doc).Details["projects"]

		doc.Projects = append(doc.Projects, resume.Project{ID: "2", Name: "two"})
		after := s.Score(doc).Details["projects"]

		assert.GreaterOrEqual(t, after, before, s.Name())
	}
}

func TestScoresAreBoundedAndDeterministic(t *testing.T) {
	docs := []*resume.Document{resume.Empty(), resume.Sample()}
	heavy := resume.Sample()
	heavy.Summary = words(80) + " built"
	heavy.Experience[0].Description = "• shipped 3x"
	docs = append(docs, heavy)

	for _, name := range Names() {
		s, err := ByName(name)
		require.NoError(t, err)
		for _, doc := range docs {
			first := s.Score(doc)
			assert.GreaterOrEqual(t, first.Score, 0)
			assert.LessOrEqual(t, first.Score, 100)
			assert.Equal(t, first, s.Score(doc))
		}
	}
}

func TestByName(t *testing.T) {
	assert.Equal(t, []string{"compact", "detailed"}, Names())

	_, err := ByName("blended")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Contains(t, err.Error(), "unknown scoring strategy 'blended'")
}

func TestLabels(t *testing.T) {
	tests := []struct {
		score      int
		mini, card string
	}{
		{0, "Needs Work", "Needs Work"},
		{40, "Needs Work", "Fair"},
		{41, "Getting There", "Fair"},
		{60, "Getting There", "Good"},
		{70, "Getting There", "Good"},
		{71, "Strong Resume", "Good"},
		{80, "Strong Resume", "Excellent"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.mini, MiniLabel(tt.score), "mini %d", tt.score)
		assert.Equal(t, tt.card, CardLabel(tt.score), "card %d", tt.score)
	}
}

func TestDedupeKeepsFirstOccurrence(t *testing.T) {
	assert.Equal(t, []string{"b", "a", "c"}, dedupe([]string{"b", "a", "b", "c", "a"}))
}
