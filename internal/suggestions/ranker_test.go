package suggestions

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"resumescore/internal/resume"
)

func titles(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, sg := range s {
		out[i] = sg.Title
	}
	return out
}

func TestGenerateEmptyResumeKeepsFirstThree(t *testing.T) {
	got := Generate(resume.Empty())

	assert.Equal(t, []Suggestion{
		{
			Title:       "Add More Projects",
			Description: "You have 0 project(s). Target 2+ to showcase real work.",
			Priority:    PriorityHigh,
		},
		{
			Title:       "Add Measurable Impact",
			Description: `Include numbers, percentages, or metrics (e.g., "40% improvement", "5k users").`,
			Priority:    PriorityHigh,
		},
		{
			Title:       "Expand Skills List",
			Description: "You have 0 skills. Add more to reach 8+ for better ATS compatibility.",
			Priority:    PriorityMedium,
		},
	}, got, "blank summary is skipped and work experience is cut by the cap")
}

func TestGenerateSampleSummaryOnly(t *testing.T) {
	got := Generate(resume.Sample())

	assert.Equal(t, []Suggestion{{
		Title:       "Expand Summary",
		Description: "Your summary is 20 words. Aim for 40–120 words to stand out.",
		Priority:    PriorityMedium,
	}}, got)
}

func TestGenerateScanOrder(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*resume.Document)
		want   []string
	}{
		{
			name:   "nothing to improve",
			mutate: func(d *resume.Document) { d.Summary = strings.Repeat("word ", 45) },
			want:   []string{},
		},
		{
			name: "no experience reaches the list when earlier checks pass",
			mutate: func(d *resume.Document) {
				d.Summary = ""
				d.Experience = nil
			},
			want: []string{"Add Work Experience"},
		},
		{
			name: "duplicate skills count individually",
			mutate: func(d *resume.Document) {
				d.Summary = ""
				d.Skills = resume.SkillSet{Technical: []string{"React", "React", "Node"}}
			},
			want: []string{"Expand Skills List"},
		},
		{
			name: "metrics only in projects",
			mutate: func(d *resume.Document) {
				d.Summary = ""
				d.Experience[0].Description = "Frontend work"
				d.Projects[0].Description = "Reached 2k stars"
			},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := resume.Sample()
			tt.mutate(doc)
			assert.Equal(t, tt.want, titles(Generate(doc)))
		})
	}
}

func TestGenerateNeverExceedsCap(t *testing.T) {
	doc := resume.Empty()
	doc.Summary = "short"
	assert.Len(t, Generate(doc), MaxSuggestions)
	assert.Equal(t, []string{"Add More Projects", "Add Measurable Impact", "Expand Summary"}, titles(Generate(doc)))
}

func TestSkillSuggestionInterpolatesDuplicates(t *testing.T) {
	doc := resume.Sample()
	doc.Summary = ""
	doc.Skills = resume.SkillSet{Technical: []string{"React", "React", "Node"}}

	got := Generate(doc)
	assert.Equal(t, "You have 3 skills. Add more to reach 8+ for better ATS compatibility.", got[0].Description)
}
