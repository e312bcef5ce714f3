package domain

import "sort"

// MeldType identifies the kind of a valid meld.
type MeldType string

const (
	MeldPureSequence MeldType = "pure-sequence"
	MeldSequence     MeldType = "sequence"
	MeldSet          MeldType = "set"
)

// Meld is a classified group of three or more cards.
type Meld struct {
	Type  MeldType `json:"type"`
	Cards []Card   `json:"cards"`
}

// IsSequence reports whether the meld counts towards the sequence requirement.
func (m Meld) IsSequence() bool {
	return m.Type == MeldPureSequence || m.Type == MeldSequence
}

// ClassifyMeld decides whether the cards form a set, a pure sequence or a
// joker-assisted sequence. It returns ok=false for anything else; callers
// treat such cards as deadwood. The returned meld holds the cards in display
// order (runs ascending with jokers in the positions they stand for).
func ClassifyMeld(cards []Card) (Meld, bool) {
	if len(cards) < MinMeldSize {
		return Meld{}, false
	}
	naturals, jokers := splitJokers(cards)

	// A set needs at least one natural card to fix the rank.
	if len(naturals) == 0 {
		if len(cards) > MaxSequenceSize {
			return Meld{}, false
		}
		return Meld{Type: MeldSequence, Cards: append([]Card(nil), cards...)}, true
	}

	if isSet(naturals, len(cards)) {
		ordered := make([]Card, 0, len(cards))
		ordered = append(ordered, naturals...)
		SortHand(ordered)
		ordered = append(ordered, jokers...)
		return Meld{Type: MeldSet, Cards: ordered}, true
	}

	if ordered, ok := orderSequence(naturals, jokers); ok {
		typ := MeldSequence
		if len(jokers) == 0 {
			typ = MeldPureSequence
		}
		return Meld{Type: typ, Cards: ordered}, true
	}

	return Meld{}, false
}

func isSet(naturals []Card, size int) bool {
	if size > MaxSetSize || !IsSameRank(naturals) {
		return false
	}
	seen := make(map[Suit]bool, len(naturals))
	for _, c := range naturals {
		if seen[c.Suit] {
			return false
		}
		seen[c.Suit] = true
	}
	return true
}

// orderSequence lays out a same-suit run, filling rank gaps with jokers and
// extending the run upwards (then downwards) with any jokers left over.
func orderSequence(naturals, jokers []Card) ([]Card, bool) {
	size := len(naturals) + len(jokers)
	if size > MaxSequenceSize {
		return nil, false
	}
	suit := naturals[0].Suit
	for _, c := range naturals {
		if c.Suit != suit {
			return nil, false
		}
	}

	sorted := append([]Card(nil), naturals...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Rank < sorted[j].Rank })
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Rank == sorted[i-1].Rank {
			return nil, false
		}
	}

	if len(jokers) == 0 {
		ranks := make([]Rank, len(sorted))
		for i, c := range sorted {
			ranks[i] = c.Rank
		}
		return sorted, IsConsecutive(ranks)
	}

	lo, hi := sorted[0].Rank, sorted[len(sorted)-1].Rank
	gaps := int(hi-lo+1) - len(sorted)
	if gaps > len(jokers) {
		return nil, false
	}

	spare := jokers
	ordered := make([]Card, 0, size)
	next := 0
	for r := lo; r <= hi; r++ {
		if next < len(sorted) && sorted[next].Rank == r {
			ordered = append(ordered, sorted[next])
			next++
			continue
		}
		ordered = append(ordered, spare[0])
		spare = spare[1:]
	}

	for len(spare) > 0 && hi < RankKing {
		ordered = append(ordered, spare[0])
		spare = spare[1:]
		hi++
	}
	for len(spare) > 0 && lo > RankAce {
		ordered = append([]Card{spare[0]}, ordered...)
		spare = spare[1:]
		lo--
	}
	return ordered, len(spare) == 0
}
