// Package suggestions picks the few most useful next steps for a resume.
package suggestions

import (
	"fmt"
	"strings"

	"resumescore/internal/heuristics"
	"resumescore/internal/resume"
)

type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// MaxSuggestions caps the output of Generate.
const MaxSuggestions = 3

type Suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// signal is one improvement check. It returns ok=false when nothing needs
// to change.
type signal func(doc *resume.Document) (Suggestion, bool)

// signals are scanned in order; scanning stops once MaxSuggestions fired.
var signals = []signal{
	projectCount,
	measurableImpact,
	summaryLength,
	skillCount,
	workExperience,
}

// Generate returns at most MaxSuggestions suggestions in scan order.
func Generate(doc *resume.Document) []Suggestion {
	out := make([]Suggestion, 0, MaxSuggestions)
	for _, check := range signals {
		if len(out) == MaxSuggestions {
			break
		}
		if s, ok := check(doc); ok {
			out = append(out, s)
		}
	}
	return out
}

func projectCount(doc *resume.Document) (Suggestion, bool) {
	n := len(doc.Projects)
	if n >= 2 {
		return Suggestion{}, false
	}
	return Suggestion{
		Title:       "Add More Projects",
		Description: fmt.Sprintf("You have %d project(s). Target 2+ to showcase real work.", n),
		Priority:    PriorityHigh,
	}, true
}

func measurableImpact(doc *resume.Document) (Suggestion, bool) {
	for _, e := range doc.Experience {
		if heuristics.HasMetric(e.Description) {
			return Suggestion{}, false
		}
	}
	for _, p := range doc.Projects {
		if heuristics.HasMetric(p.Description) {
			return Suggestion{}, false
		}
	}
	return Suggestion{
		Title:       "Add Measurable Impact",
		Description: `Include numbers, percentages, or metrics (e.g., "40% improvement", "5k users").`,
		Priority:    PriorityHigh,
	}, true
}

// summaryLength only fires for a summary that exists but runs short.
func summaryLength(doc *resume.Document) (Suggestion, bool) {
	if strings.TrimSpace(doc.Summary) == "" {
		return Suggestion{}, false
	}
	n := heuristics.WordCount(doc.Summary)
	if n >= 40 {
		return Suggestion{}, false
	}
	return Suggestion{
		Title:       "Expand Summary",
		Description: fmt.Sprintf("Your summary is %d words. Aim for 40–120 words to stand out.", n),
		Priority:    PriorityMedium,
	}, true
}

func skillCount(doc *resume.Document) (Suggestion, bool) {
	n := len(doc.SkillList())
	if n >= 8 {
		return Suggestion{}, false
	}
	return Suggestion{
		Title:       "Expand Skills List",
		Description: fmt.Sprintf("You have %d skills. Add more to reach 8+ for better ATS compatibility.", n),
		Priority:    PriorityMedium,
	}, true
}

func workExperience(doc *resume.Document) (Suggestion, bool) {
	if len(doc.Experience) > 0 {
		return Suggestion{}, false
	}
	return Suggestion{
		Title:       "Add Work Experience",
		Description: "Include internships, freelance work, or contract positions if no full-time roles.",
		Priority:    PriorityHigh,
	}, true
}
