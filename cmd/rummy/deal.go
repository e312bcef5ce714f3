package main

import (
	"flag"
	"math/rand"
	"time"

	"github.com/pterm/pterm"

	"github.com/sukhmal/RummyScorer-sub000/internal/arranger"
	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
)

// dealHand shuffles a shoe, deals one hand and cuts the next card for the
// wild joker. A printed joker cut makes aces wild.
func dealHand(rng *rand.Rand, decks, printedJokers int) (hand []domain.Card, cut domain.Card) {
	shoe := domain.ShuffleDeck(domain.NewDeck(decks, printedJokers), rng)
	cut = shoe[domain.HandSize]
	wild := cut.Rank
	if cut.Joker == domain.JokerPrinted {
		wild = domain.RankAce
	}
	hand = domain.MarkWildJokers(shoe[:domain.HandSize], wild)
	domain.SortHand(hand)
	return hand, cut
}

func runDeal(args []string) error {
	fs := flag.NewFlagSet("deal", flag.ExitOnError)
	seed := fs.Int64("seed", time.Now().UnixNano(), "shuffle seed")
	decks := fs.Int("decks", 2, "number of 52-card decks")
	jokers := fs.Int("jokers", 2, "number of printed jokers")
	fs.Parse(args)

	if *decks < 1 || *jokers < 0 {
		return errInvalidShoe
	}

	hand, cut := dealHand(rand.New(rand.NewSource(*seed)), *decks, *jokers)
	pterm.Info.Printfln("Seed %d, cut joker %s", *seed, cut.String())
	pterm.Info.Printfln("Hand: %s", cardsString(hand))
	renderAnalysis(arranger.Analyze(hand))
	return nil
}
