// Package scoring computes ATS compatibility scores. Two independent rule
// sets exist and callers pick one by name; they are never blended.
package scoring

import (
	"fmt"
	"slices"

	"resumescore/internal/errors"
	"resumescore/internal/resume"
)

const (
	StrategyCompact  = "compact"
	StrategyDetailed = "detailed"
)

// Strategy scores a resume on a 0-100 scale.
type Strategy interface {
	Name() string
	Score(doc *resume.Document) Result
}

// Result is the outcome of one scoring run. Details maps each rule to the
// points it awarded.
type Result struct {
	Strategy    string         `json:"strategy"`
	Score       int            `json:"score"`
	Suggestions []string       `json:"suggestions"`
	Details     map[string]int `json:"details"`
}

var strategies = map[string]Strategy{
	StrategyCompact:  Compact{},
	StrategyDetailed: Detailed{},
}

// ByName returns the named strategy.
func ByName(name string) (Strategy, error) {
	s, ok := strategies[name]
	if !ok {
		return nil, errors.NewValidationError(errors.ErrCodeUnknownStrategy,
			fmt.Sprintf("unknown scoring strategy '%s'. Supported strategies: %v", name, Names()), nil)
	}
	return s, nil
}

// Names lists the registered strategies in sorted order.
func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// rule is one weighted check. A failing rule may contribute a suggestion.
type rule struct {
	key    string
	points int
	check  func(doc *resume.Document) bool
	advice func(doc *resume.Document) string
}

// evaluate runs rules in order and returns the clamped total, the details
// map and every suggestion produced by failing rules.
func evaluate(doc *resume.Document, rules []rule) (int, map[string]int, []string) {
	total := 0
	details := make(map[string]int, len(rules))
	suggestions := []string{}

	for _, r := range rules {
		if r.check(doc) {
			total += r.points
			details[r.key] = r.points
			continue
		}
		details[r.key] = 0
		if r.advice == nil {
			continue
		}
		if s := r.advice(doc); s != "" {
			suggestions = append(suggestions, s)
		}
	}

	return clamp(total), details, suggestions
}

func clamp(score int) int {
	return max(0, min(100, score))
}
