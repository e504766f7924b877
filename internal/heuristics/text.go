// Package heuristics implements the shallow lexical checks used by the
// validators, scorers and ranker. They are deliberately crude and must stay
// that way: scores and fixtures depend on the exact behaviour.
package heuristics

import (
	"regexp"
	"strings"
	"unicode"
)

// actionVerbs is matched on 4-character prefixes against the first word.
var actionVerbs = []string{
	"built", "developed", "designed", "implemented", "led", "improved",
	"created", "optimized", "automated", "managed", "achieved", "delivered",
	"enhanced", "launched", "mentored", "spearheaded", "transformed", "scaled",
	"architected", "coordinated", "collaborated", "established", "executed",
	"reduced", "increased",
}

// summaryVerbs is matched as plain substrings anywhere in a summary.
var summaryVerbs = []string{
	"built", "led", "designed", "improved", "created", "developed",
	"launched", "optimized", "managed", "increased", "reduced", "implemented",
}

var (
	metricPattern  = regexp.MustCompile(`(?i)(\d+%)|(\d+k)|(\d+\+)|(\d+→\d+)|(\d+x)`)
	specialPattern = regexp.MustCompile(`[^a-zA-Z0-9\s.,-]`)
	letterPattern  = regexp.MustCompile(`[a-zA-Z]`)
	digitPattern   = regexp.MustCompile(`\d`)
)

// HasActionVerb reports whether the first word of text starts with the
// first four letters of a known action verb. "ledger" matches "led".
func HasActionVerb(text string) bool {
	fields := strings.Fields(strings.ToLower(text))
	if len(fields) == 0 {
		return false
	}
	first := fields[0]
	for _, verb := range actionVerbs {
		if strings.HasPrefix(first, prefix(verb, 4)) {
			return true
		}
	}
	return false
}

// ContainsActionVerb reports whether any summary verb occurs anywhere in
// text, case-insensitively.
func ContainsActionVerb(text string) bool {
	lower := strings.ToLower(text)
	for _, verb := range summaryVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}

// HasMetric reports whether text contains a quantified-impact token such as
// 40%, 5k, 10+, 2→8 or 3x.
func HasMetric(text string) bool {
	return metricPattern.MatchString(text)
}

// IsLikelySpam flags gibberish. Rules are checked in order: too many special
// characters, heavy word repetition, no letters, and too few words with no
// digits. Empty text is not spam.
func IsLikelySpam(text string) bool {
	if text == "" {
		return false
	}

	length := len([]rune(text))
	special := len(specialPattern.FindAllStringIndex(text, -1))
	if float64(special)/float64(length) > 0.3 {
		return true
	}

	words := splitWords(text)
	if len(words) > 0 {
		unique := make(map[string]struct{}, len(words))
		for _, w := range words {
			unique[strings.ToLower(w)] = struct{}{}
		}
		if 1-float64(len(unique))/float64(len(words)) > 0.7 {
			return true
		}
	}

	if !letterPattern.MatchString(text) {
		return true
	}

	if len(words) < 3 && !digitPattern.MatchString(text) {
		return true
	}

	return false
}

// WordCount counts whitespace-separated words. Blank text has zero words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// splitWords mirrors a split on whitespace runs: leading or trailing
// whitespace yields an empty token at that end.
func splitWords(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return []string{""}
	}
	var out []string
	if unicode.IsSpace([]rune(text)[0]) {
		out = append(out, "")
	}
	out = append(out, fields...)
	runes := []rune(text)
	if unicode.IsSpace(runes[len(runes)-1]) {
		out = append(out, "")
	}
	return out
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
