package types

import (
	"resumescore/internal/scoring"
	"resumescore/internal/suggestions"
	"resumescore/internal/validation"
)

// ScoreOutput is the ATS score as returned by the CLI and the API
type ScoreOutput struct {
	Strategy    string         `json:"strategy"`
	Score       int            `json:"score"`
	Label       string         `json:"label"`
	Suggestions []string       `json:"suggestions"`
	Details     map[string]int `json:"details"`
}

// ValidateOutput is the validation report plus the follow-up checklist
type ValidateOutput struct {
	IsValid      bool               `json:"isValid"`
	Errors       []validation.Issue `json:"errors"`
	Completeness int                `json:"completeness"`
	Suggestions  []string           `json:"suggestions"`
}

// SuggestOutput combines the validation checklist with ranked improvements
type SuggestOutput struct {
	Checklist    []string                 `json:"checklist"`
	Improvements []suggestions.Suggestion `json:"improvements"`
}

// AnalysisOutput is everything the engine computes for one resume
type AnalysisOutput struct {
	Score        ScoreOutput              `json:"score"`
	Validation   ValidateOutput           `json:"validation"`
	Improvements []suggestions.Suggestion `json:"improvements"`
}

func NewScoreOutput(r scoring.Result) ScoreOutput {
	return ScoreOutput{
		Strategy:    r.Strategy,
		Score:       r.Score,
		Label:       r.Label(),
		Suggestions: r.Suggestions,
		Details:     r.Details,
	}
}

func NewValidateOutput(r validation.Report, checklist []string) ValidateOutput {
	return ValidateOutput{
		IsValid:      r.IsValid,
		Errors:       r.Errors,
		Completeness: r.Completeness,
		Suggestions:  checklist,
	}
}
