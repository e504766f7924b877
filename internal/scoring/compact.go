package scoring

import (
	"fmt"

	"resumescore/internal/heuristics"
	"resumescore/internal/resume"
)

const maxCompactSuggestions = 3

// Compact is the preview rule set. Its weights total 80, so a resume that
// passes every rule scores 80.
type Compact struct{}

func (Compact) Name() string { return StrategyCompact }

var compactRules = []rule{
	{
		key:    "summary",
		points: 15,
		check: func(doc *resume.Document) bool {
			n := heuristics.WordCount(doc.Summary)
			return n >= 40 && n <= 120
		},
		advice: func(*resume.Document) string { return "Write a stronger summary (40–120 words)." },
	},
	{
		key:    "projects",
		points: 10,
		check:  func(doc *resume.Document) bool { return len(doc.Projects) >= 2 },
		advice: func(*resume.Document) string { return "Add at least 2 projects." },
	},
	{
		key:    "experience",
		points: 10,
		check:  func(doc *resume.Document) bool { return len(doc.Experience) >= 1 },
		advice: func(*resume.Document) string { return "Add at least 1 work experience entry." },
	},
	{
		key:    "skills",
		points: 10,
		check:  func(doc *resume.Document) bool { return len(doc.SkillList()) >= 8 },
		advice: func(doc *resume.Document) string {
			return fmt.Sprintf("Add more skills (target 8+, currently %d).", len(doc.SkillList()))
		},
	},
	{
		key:    "links",
		points: 10,
		check:  func(doc *resume.Document) bool { return doc.Links.Github != "" || doc.Links.LinkedIn != "" },
		advice: func(*resume.Document) string { return "Add a GitHub or LinkedIn link." },
	},
	{
		key:    "metrics",
		points: 15,
		check:  hasImpactMetric,
		advice: func(*resume.Document) string {
			return "Add measurable impact (numbers, percentages) to experience or projects."
		},
	},
	{
		// No suggestion is emitted for missing education.
		key:    "education",
		points: 10,
		check: func(doc *resume.Document) bool {
			for _, e := range doc.Education {
				if e.School != "" && e.Degree != "" && e.Field != "" && e.GraduationDate != "" {
					return true
				}
			}
			return false
		},
	},
}

func (c Compact) Score(doc *resume.Document) Result {
	score, details, suggestions := evaluate(doc, compactRules)
	if len(suggestions) > maxCompactSuggestions {
		suggestions = suggestions[:maxCompactSuggestions]
	}
	return Result{
		Strategy:    c.Name(),
		Score:       score,
		Suggestions: suggestions,
		Details:     details,
	}
}

// hasImpactMetric reports whether any experience or project description
// carries a quantified result.
func hasImpactMetric(doc *resume.Document) bool {
	for _, e := range doc.Experience {
		if heuristics.HasMetric(e.Description) {
			return true
		}
	}
	for _, p := range doc.Projects {
		if heuristics.HasMetric(p.Description) {
			return true
		}
	}
	return false
}
