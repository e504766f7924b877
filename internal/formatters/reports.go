package formatters

import (
	"fmt"
	"slices"
	"strings"

	"resumescore/internal/suggestions"
	"resumescore/internal/types"
	"resumescore/internal/validation"
)

// style captures the few places plain text and Markdown differ.
type style struct {
	format  string
	title   func(string) string
	section func(string) string
}

var plainStyle = style{
	format:  "text",
	title:   func(s string) string { return "=== " + strings.ToUpper(s) + " ===\n" },
	section: func(s string) string { return s + ":\n" },
}

var markdownStyle = style{
	format:  "markdown",
	title:   func(s string) string { return "# " + s + "\n\n" },
	section: func(s string) string { return "## " + s + "\n\n" },
}

// ScoreFormatter renders a ScoreOutput
type ScoreFormatter struct{ style style }

func (f *ScoreFormatter) SupportedType() string { return typeScore }

func (f *ScoreFormatter) Format(data any) (string, error) {
	out, ok := data.(types.ScoreOutput)
	if !ok {
		return "", fmt.Errorf("expected ScoreOutput, got %T", data)
	}
	var b strings.Builder
	writeScore(&b, f.style, out)
	return b.String(), nil
}

// ValidateFormatter renders a ValidateOutput
type ValidateFormatter struct{ style style }

func (f *ValidateFormatter) SupportedType() string { return typeValidation }

func (f *ValidateFormatter) Format(data any) (string, error) {
	out, ok := data.(types.ValidateOutput)
	if !ok {
		return "", fmt.Errorf("expected ValidateOutput, got %T", data)
	}
	var b strings.Builder
	writeValidation(&b, f.style, out)
	return b.String(), nil
}

// SuggestFormatter renders a SuggestOutput
type SuggestFormatter struct{ style style }

func (f *SuggestFormatter) SupportedType() string { return typeSuggest }

func (f *SuggestFormatter) Format(data any) (string, error) {
	out, ok := data.(types.SuggestOutput)
	if !ok {
		return "", fmt.Errorf("expected SuggestOutput, got %T", data)
	}
	var b strings.Builder
	b.WriteString(f.style.title("Suggestions"))
	b.WriteString("\n")
	writeList(&b, f.style, "Checklist", out.Checklist)
	writeImprovements(&b, f.style, out.Improvements)
	return b.String(), nil
}

// AnalysisFormatter renders an AnalysisOutput
type AnalysisFormatter struct{ style style }

func (f *AnalysisFormatter) SupportedType() string { return typeAnalysis }

func (f *AnalysisFormatter) Format(data any) (string, error) {
	out, ok := data.(types.AnalysisOutput)
	if !ok {
		return "", fmt.Errorf("expected AnalysisOutput, got %T", data)
	}
	var b strings.Builder
	writeScore(&b, f.style, out.Score)
	b.WriteString("\n")
	writeValidation(&b, f.style, out.Validation)
	b.WriteString("\n")
	b.WriteString(f.style.title("Improvements"))
	b.WriteString("\n")
	writeImprovements(&b, f.style, out.Improvements)
	return b.String(), nil
}

func writeScore(b *strings.Builder, st style, out types.ScoreOutput) {
	b.WriteString(st.title("ATS Score"))
	b.WriteString("\n")
	fmt.Fprintf(b, "Strategy: %s\n", out.Strategy)
	fmt.Fprintf(b, "Score: %d/100 (%s)\n\n", out.Score, out.Label)

	keys := make([]string, 0, len(out.Details))
	for k := range out.Details {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	breakdown := make([]string, 0, len(keys))
	for _, k := range keys {
		breakdown = append(breakdown, fmt.Sprintf("%s: %d", k, out.Details[k]))
	}
	writeList(b, st, "Breakdown", breakdown)
	writeList(b, st, "Suggestions", out.Suggestions)
}

func writeValidation(b *strings.Builder, st style, out types.ValidateOutput) {
	b.WriteString(st.title("Validation"))
	b.WriteString("\n")
	valid := "no"
	if out.IsValid {
		valid = "yes"
	}
	fmt.Fprintf(b, "Valid: %s\n", valid)
	fmt.Fprintf(b, "Completeness: %d%%\n\n", out.Completeness)

	issues := make([]string, 0, len(out.Errors))
	for _, issue := range out.Errors {
		issues = append(issues, formatIssue(issue))
	}
	writeList(b, st, "Issues", issues)
	writeList(b, st, "Checklist", out.Suggestions)
}

func formatIssue(issue validation.Issue) string {
	return fmt.Sprintf("[%s] %s: %s", issue.Severity, issue.Field, issue.Message)
}

func writeImprovements(b *strings.Builder, st style, items []suggestions.Suggestion) {
	lines := make([]string, 0, len(items))
	for _, s := range items {
		lines = append(lines, fmt.Sprintf("[%s] %s: %s", s.Priority, s.Title, s.Description))
	}
	writeList(b, st, "Improvements", lines)
}

// writeList writes a titled bullet list, or "None" when empty.
func writeList(b *strings.Builder, st style, title string, items []string) {
	b.WriteString(st.section(title))
	if len(items) == 0 {
		b.WriteString("None\n\n")
		return
	}
	for _, item := range items {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n")
}
