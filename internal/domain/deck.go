package domain

import (
	"fmt"
	"math/rand"
	"sort"
)

// NewDeck returns an ordered shoe of the given number of 52-card decks plus
// printed jokers. Card ids are "d<deck>-<code>" and "jk<n>".
func NewDeck(decks, printedJokers int) []Card {
	shoe := make([]Card, 0, decks*52+printedJokers)
	for d := 1; d <= decks; d++ {
		for _, s := range Suits {
			for r := RankAce; r <= RankKing; r++ {
				c := Card{Suit: s, Rank: r, Joker: JokerNone}
				c.ID = fmt.Sprintf("d%d-%s", d, c.String())
				shoe = append(shoe, c)
			}
		}
	}
	for j := 1; j <= printedJokers; j++ {
		shoe = append(shoe, Card{ID: fmt.Sprintf("jk%d", j), Joker: JokerPrinted})
	}
	return shoe
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// MarkWildJokers turns every natural card of the cut rank into a wild joker.
// Suit and rank are kept for display.
func MarkWildJokers(cards []Card, wild Rank) []Card {
	out := make([]Card, len(cards))
	for i, c := range cards {
		if c.Joker == JokerNone && c.Rank == wild {
			c.Joker = JokerWild
		}
		out[i] = c
	}
	return out
}

// SortHand orders a hand by suit, then rank, with jokers last.
func SortHand(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cardOrder(cards[i]) < cardOrder(cards[j])
	})
}

func cardOrder(c Card) int {
	if c.IsJoker() {
		return 1000 + int(c.Rank)
	}
	return suitIndex(c.Suit)*16 + int(c.Rank)
}

func suitIndex(s Suit) int {
	for i, x := range Suits {
		if x == s {
			return i
		}
	}
	return len(Suits)
}
