package scoring

import (
	"fmt"
	"strings"

	"resumescore/internal/heuristics"
	"resumescore/internal/resume"
)

// bulletMarkers are the characters that count as bullet formatting. The
// last entry is a bullet mis-decoded as Latin-1, which still shows up in
// pasted text.
var bulletMarkers = []string{"\n", "-", "•", "â€¢"}

// Detailed is the score card rule set. Its weights total 100.
type Detailed struct{}

func (Detailed) Name() string { return StrategyDetailed }

var detailedRules = []rule{
	{
		key:    "name",
		points: 10,
		check:  func(doc *resume.Document) bool { return present(doc.PersonalInfo.Name) },
		advice: fixed("Add your full name (+10 points)"),
	},
	{
		key:    "email",
		points: 10,
		check:  func(doc *resume.Document) bool { return present(doc.PersonalInfo.Email) },
		advice: fixed("Add an email address (+10 points)"),
	},
	{
		key:    "summaryLength",
		points: 10,
		check:  func(doc *resume.Document) bool { return len([]rune(strings.TrimSpace(doc.Summary))) > 50 },
		advice: fixed("Add a professional summary >50 characters (+10 points)"),
	},
	{
		key:    "summaryVerbs",
		points: 10,
		check:  func(doc *resume.Document) bool { return heuristics.ContainsActionVerb(doc.Summary) },
		advice: fixed("Use action verbs in your summary (built, led, designed) (+10 points)"),
	},
	{
		key:    "experienceBullets",
		points: 15,
		check: func(doc *resume.Document) bool {
			for _, e := range doc.Experience {
				for _, marker := range bulletMarkers {
					if strings.Contains(e.Description, marker) {
						return true
					}
				}
			}
			return false
		},
		advice: func(doc *resume.Document) string {
			if len(doc.Experience) > 0 {
				return "Add bullet points in your experience descriptions (+15 points)"
			}
			return "Add at least one work experience entry (+15 points)"
		},
	},
	{
		key:    "education",
		points: 10,
		check:  func(doc *resume.Document) bool { return len(doc.Education) > 0 },
		advice: fixed("Add education details (+10 points)"),
	},
	{
		key:    "skillsCount",
		points: 10,
		check:  func(doc *resume.Document) bool { return len(doc.SkillList()) >= 5 },
		advice: func(doc *resume.Document) string {
			return fmt.Sprintf("Add more skills (need 5+, currently %d) (+10 points)", len(doc.SkillList()))
		},
	},
	{
		key:    "projects",
		points: 10,
		check:  func(doc *resume.Document) bool { return len(doc.Projects) > 0 },
		advice: fixed("Add a project to showcase your work (+10 points)"),
	},
	{
		key:    "phone",
		points: 5,
		check:  func(doc *resume.Document) bool { return present(doc.PersonalInfo.Phone) },
		advice: fixed("Add a phone number (+5 points)"),
	},
	{
		key:    "linkedin",
		points: 5,
		check:  func(doc *resume.Document) bool { return present(doc.Links.LinkedIn) },
	},
	{
		key:    "github",
		points: 5,
		check:  func(doc *resume.Document) bool { return present(doc.Links.Github) },
	},
}

// Score returns every suggestion once, in the order first produced.
func (d Detailed) Score(doc *resume.Document) Result {
	score, details, suggestions := evaluate(doc, detailedRules)
	return Result{
		Strategy:    d.Name(),
		Score:       score,
		Suggestions: dedupe(suggestions),
		Details:     details,
	}
}

func fixed(s string) func(*resume.Document) string {
	return func(*resume.Document) string { return s }
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
