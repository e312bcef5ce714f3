package arranger

import "github.com/sukhmal/RummyScorer-sub000/internal/domain"

// Analysis pairs the best arrangement of a hand with its declaration check.
type Analysis struct {
	Arrangement
	Result domain.DeclarationResult `json:"result"`
}

// Analyze arranges the hand and validates the arrangement as a show.
func Analyze(hand []domain.Card) Analysis {
	a := Arrange(hand)
	return Analysis{Arrangement: a, Result: a.Validate()}
}

// Hints lists what keeps the hand from being declared. An empty list means the
// best arrangement is a valid show.
func Hints(hand []domain.Card) []string {
	return Analyze(hand).Result.Errors
}
