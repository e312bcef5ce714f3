package domain

import "fmt"

const (
	HintNeedPureSequence = "Need a pure sequence with no jokers"
	HintNeedTwoSequences = "Need at least 2 sequences"
)

// DeclarationResult is the outcome of checking a proposed show.
type DeclarationResult struct {
	IsValid             bool     `json:"isValid"`
	HasPureSequence     bool     `json:"hasPureSequence"`
	HasMinimumSequences bool     `json:"hasMinimumSequences"`
	AllCardsMelded      bool     `json:"allCardsMelded"`
	DeadwoodPoints      int      `json:"deadwoodPoints"`
	ClosingCard         *Card    `json:"closingCard,omitempty"`
	Errors              []string `json:"errors"`
}

// DeadwoodPoints sums the penalty of unmelded cards.
func DeadwoodPoints(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.Points()
	}
	return total
}

// UnmeldedHint renders the "cards still unmelded" message.
func UnmeldedHint(n int) string {
	if n == 1 {
		return "1 card still unmelded"
	}
	return fmt.Sprintf("%d cards still unmelded", n)
}

// ValidateDeclaration applies the declaration rule: at least two sequences,
// one of them pure, and nothing left unmelded. Each meld is re-classified; a
// group that does not classify counts as deadwood. When exactly 13 cards are
// melded and one card is left over, that card is the closing discard and is
// neither deadwood nor a blocker.
func ValidateDeclaration(melds []Meld, deadwood []Card) DeclarationResult {
	res := DeclarationResult{Errors: []string{}}

	dead := append([]Card(nil), deadwood...)
	melded, sequences := 0, 0
	for _, m := range melds {
		classified, ok := ClassifyMeld(m.Cards)
		if !ok {
			dead = append(dead, m.Cards...)
			continue
		}
		melded += len(classified.Cards)
		if classified.Type == MeldPureSequence {
			res.HasPureSequence = true
		}
		if classified.IsSequence() {
			sequences++
		}
	}

	if melded == HandSize && len(dead) == 1 {
		closing := dead[0]
		res.ClosingCard = &closing
		dead = nil
	}

	res.HasMinimumSequences = sequences >= 2
	res.AllCardsMelded = len(dead) == 0
	res.DeadwoodPoints = DeadwoodPoints(dead)
	res.IsValid = res.HasPureSequence && res.HasMinimumSequences && res.AllCardsMelded

	if !res.HasPureSequence {
		res.Errors = append(res.Errors, HintNeedPureSequence)
	}
	if !res.HasMinimumSequences {
		res.Errors = append(res.Errors, HintNeedTwoSequences)
	}
	if !res.AllCardsMelded {
		res.Errors = append(res.Errors, UnmeldedHint(len(dead)))
	}
	return res
}
