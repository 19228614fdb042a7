package domain

// Strategy is a named weighting scheme combining normalized rating and
// the capped vote signal into a single ranking score.
type Strategy string

const (
	// StrategyRatingHeavy weights rating 0.8 and vote signal 0.2.
	StrategyRatingHeavy Strategy = "rating_heavy"

	// StrategyVotesHeavy weights rating 0.5 and vote signal 0.5.
	StrategyVotesHeavy Strategy = "votes_heavy"
)

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyRatingHeavy || s == StrategyVotesHeavy
}

// Label returns the display label used in explanations.
func (s Strategy) Label() string {
	switch s {
	case StrategyVotesHeavy:
		return "B: Votes-heavy"
	default:
		return "A: Rating-heavy"
	}
}

// ParseStrategy maps user input to a Strategy. Empty input falls back
// to the rating-heavy default; anything else unknown is rejected by
// the caller via Valid.
func ParseStrategy(s string) Strategy {
	if s == "" {
		return StrategyRatingHeavy
	}
	return Strategy(s)
}
