package scoring

// MiniLabel is the readiness band shown next to a compact score.
func MiniLabel(score int) string {
	switch {
	case score <= 40:
		return "Needs Work"
	case score <= 70:
		return "Getting There"
	default:
		return "Strong Resume"
	}
}

// CardLabel is the band shown on the detailed score card.
func CardLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Needs Work"
	}
}

// Label picks the band that belongs to the strategy that produced r.
func (r Result) Label() string {
	if r.Strategy == StrategyDetailed {
		return CardLabel(r.Score)
	}
	return MiniLabel(r.Score)
}
