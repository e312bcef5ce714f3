package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit is one of the four French suits.
type Suit string

const (
	SuitNone     Suit = ""
	SuitSpades   Suit = "spades"
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
)

// Suits lists the suits in display order.
var Suits = []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}

// Rank is the face of a card: 1 (Ace) through 13 (King). Ace is low only.
type Rank int

const (
	RankNone  Rank = 0
	RankAce   Rank = 1
	RankJack  Rank = 11
	RankQueen Rank = 12
	RankKing  Rank = 13
)

// JokerType tells whether a card substitutes for others in melds.
type JokerType string

const (
	JokerNone    JokerType = "none"
	JokerPrinted JokerType = "printed"
	JokerWild    JokerType = "wild"
)

// Card is a single playing card. ID is the identity; two decks may produce
// cards with the same suit and rank.
type Card struct {
	ID    string    `json:"id"`
	Suit  Suit      `json:"suit,omitempty"`
	Rank  Rank      `json:"rank,omitempty"`
	Joker JokerType `json:"jokerType,omitempty"`
}

// IsJoker reports whether the card acts as a substitute in melds.
func (c Card) IsJoker() bool {
	return c.Joker == JokerPrinted || c.Joker == JokerWild
}

// Points is the deadwood penalty of the card: face value for 2..10,
// 10 for A, J, Q and K, 0 for any joker.
func (c Card) Points() int {
	if c.IsJoker() {
		return 0
	}
	switch {
	case c.Rank == RankAce || c.Rank >= RankJack:
		return 10
	case c.Rank >= 2 && c.Rank <= 10:
		return int(c.Rank)
	default:
		return 0
	}
}

// String renders the card in the short form accepted by ParseCard, e.g. "10H",
// "QS", "JK" for a printed joker and "7C*" for a wild joker.
func (c Card) String() string {
	if c.Joker == JokerPrinted {
		return "JK"
	}
	s := c.Rank.String() + c.Suit.Letter()
	if c.Joker == JokerWild {
		s += "*"
	}
	return s
}

// Letter returns the single-letter suit code.
func (s Suit) Letter() string {
	switch s {
	case SuitSpades:
		return "S"
	case SuitHearts:
		return "H"
	case SuitDiamonds:
		return "D"
	case SuitClubs:
		return "C"
	default:
		return "?"
	}
}

func (r Rank) String() string {
	switch r {
	case RankAce:
		return "A"
	case RankJack:
		return "J"
	case RankQueen:
		return "Q"
	case RankKing:
		return "K"
	default:
		return strconv.Itoa(int(r))
	}
}

func suitFromLetter(l string) (Suit, bool) {
	switch strings.ToUpper(l) {
	case "S":
		return SuitSpades, true
	case "H":
		return SuitHearts, true
	case "D":
		return SuitDiamonds, true
	case "C":
		return SuitClubs, true
	}
	return SuitNone, false
}

func rankFromString(s string) (Rank, bool) {
	switch strings.ToUpper(s) {
	case "A":
		return RankAce, true
	case "J":
		return RankJack, true
	case "Q":
		return RankQueen, true
	case "K":
		return RankKing, true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 2 || n > 10 {
		return RankNone, false
	}
	return Rank(n), true
}

// ParseRank reads a rank code such as "A", "7" or "10".
func ParseRank(code string) (Rank, error) {
	r, ok := rankFromString(strings.TrimSpace(code))
	if !ok {
		return RankNone, fmt.Errorf("parse rank %q: unknown rank", code)
	}
	return r, nil
}

// ParseCard reads the short form produced by Card.String. The returned card
// has the given id.
func ParseCard(id, code string) (Card, error) {
	code = strings.TrimSpace(code)
	if strings.EqualFold(code, "JK") {
		return Card{ID: id, Joker: JokerPrinted}, nil
	}

	joker := JokerNone
	if strings.HasSuffix(code, "*") {
		joker = JokerWild
		code = strings.TrimSuffix(code, "*")
	}
	if len(code) < 2 {
		return Card{}, fmt.Errorf("parse card %q: too short", code)
	}

	suit, ok := suitFromLetter(code[len(code)-1:])
	if !ok {
		return Card{}, fmt.Errorf("parse card %q: unknown suit", code)
	}
	rank, ok := rankFromString(code[:len(code)-1])
	if !ok {
		return Card{}, fmt.Errorf("parse card %q: unknown rank", code)
	}
	return Card{ID: id, Suit: suit, Rank: rank, Joker: joker}, nil
}

// ParseHand parses whitespace separated card codes, assigning ids "c1".."cN".
func ParseHand(codes string) ([]Card, error) {
	fields := strings.Fields(codes)
	hand := make([]Card, 0, len(fields))
	for i, f := range fields {
		c, err := ParseCard("c"+strconv.Itoa(i+1), f)
		if err != nil {
			return nil, err
		}
		hand = append(hand, c)
	}
	return hand, nil
}
