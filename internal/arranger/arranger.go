// Package arranger partitions a rummy hand into melds and deadwood.
package arranger

import (
	"sort"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
)

const suitCount = 4

// Arrangement is a partition of a hand into melds plus deadwood. Every card of
// the hand appears exactly once.
type Arrangement struct {
	Melds    []domain.Meld `json:"melds"`
	Deadwood []domain.Card `json:"deadwood"`
}

// Validate runs the declaration check over the arrangement.
func (a Arrangement) Validate() domain.DeclarationResult {
	return domain.ValidateDeclaration(a.Melds, a.Deadwood)
}

// Arrange searches every way of grouping the hand and returns the best one.
// Arrangements are ranked by, in order: holding a pure sequence, lower
// deadwood points (closing card excluded), fewer deadwood cards, having at
// least two sequences, more sequences. Remaining ties go to the arrangement
// found first: runs without jokers longest first, then joker runs, then sets,
// then leaving the card as deadwood.
func Arrange(hand []domain.Card) Arrangement {
	s := newSearcher(hand)
	s.search()
	return s.result()
}

// group is a meld under construction. cards holds indexes into the hand.
type group struct {
	kind   domain.MeldType
	cards  []int
	jokers int
}

type score struct {
	hasPure   bool
	points    int
	deadCards int
	sequences int
}

func (s score) betterThan(o score) bool {
	if s.hasPure != o.hasPure {
		return s.hasPure
	}
	if s.points != o.points {
		return s.points < o.points
	}
	if s.deadCards != o.deadCards {
		return s.deadCards < o.deadCards
	}
	if (s.sequences >= 2) != (o.sequences >= 2) {
		return s.sequences >= 2
	}
	return s.sequences > o.sequences
}

type searcher struct {
	hand []domain.Card

	// slots[suit][rank] lists natural cards in hand order; avail counts how
	// many of them are still unplaced (taken from the front).
	slots [suitCount][domain.RankKing + 1][]int
	avail [suitCount][domain.RankKing + 1]int

	jokers     []int
	jokersUsed int

	groups []group
	dead   []int
	points int

	purePossible bool

	found      bool
	best       score
	bestGroups []group
	bestDead   []int
}

func newSearcher(hand []domain.Card) *searcher {
	s := &searcher{hand: hand}
	for i, c := range hand {
		if c.IsJoker() {
			s.jokers = append(s.jokers, i)
			continue
		}
		si := suitSlot(c.Suit)
		if si < 0 || c.Rank < domain.RankAce || c.Rank > domain.RankKing {
			s.dead = append(s.dead, i)
			s.points += c.Points()
			continue
		}
		s.slots[si][c.Rank] = append(s.slots[si][c.Rank], i)
		s.avail[si][c.Rank]++
	}

	for si := 0; si < suitCount; si++ {
		for r := domain.RankAce; r+2 <= domain.RankKing; r++ {
			if s.avail[si][r] > 0 && s.avail[si][r+1] > 0 && s.avail[si][r+2] > 0 {
				s.purePossible = true
			}
		}
	}
	return s
}

func suitSlot(suit domain.Suit) int {
	for i, s := range domain.Suits {
		if s == suit {
			return i
		}
	}
	return -1
}

func (s *searcher) search() {
	if s.prune() {
		return
	}
	si, r, ok := s.lowest()
	if !ok {
		s.leaf()
		return
	}

	x := s.take(si, r)
	for _, p := range s.runPlans(si, r) {
		s.playRun(x, si, p)
	}
	for _, p := range s.setPlans(si, r) {
		s.playSet(x, r, p)
	}

	pts := s.hand[x].Points()
	s.dead = append(s.dead, x)
	s.points += pts
	s.search()
	s.dead = s.dead[:len(s.dead)-1]
	s.points -= pts

	s.give(si, r)
}

// prune reports whether the current branch can no longer beat the best
// arrangement. Deadwood points only grow along a branch, except that a
// 14-card hand may still turn its single deadwood card into the closing card.
func (s *searcher) prune() bool {
	if !s.found {
		return false
	}
	if s.purePossible && !s.best.hasPure {
		return false
	}
	bound := s.points
	if len(s.dead) == 1 && len(s.hand) > domain.HandSize {
		bound = 0
	}
	return bound > s.best.points
}

// lowest returns the first slot, in suit then rank order, that still holds a
// card. Every other card in a meld containing it sits in a later slot.
func (s *searcher) lowest() (int, domain.Rank, bool) {
	for si := 0; si < suitCount; si++ {
		for r := domain.RankAce; r <= domain.RankKing; r++ {
			if s.avail[si][r] > 0 {
				return si, r, true
			}
		}
	}
	return 0, domain.RankNone, false
}

func (s *searcher) take(si int, r domain.Rank) int {
	list := s.slots[si][r]
	idx := list[len(list)-s.avail[si][r]]
	s.avail[si][r]--
	return idx
}

func (s *searcher) give(si int, r domain.Rank) {
	s.avail[si][r]++
}

func (s *searcher) jokersLeft() int {
	return len(s.jokers) - s.jokersUsed
}

func (s *searcher) takeJokers(n int) []int {
	out := s.jokers[s.jokersUsed : s.jokersUsed+n]
	s.jokersUsed += n
	return out
}

func (s *searcher) giveJokers(n int) {
	s.jokersUsed -= n
}

func (s *searcher) playRun(x, si int, p runPlan) {
	cards := make([]int, 0, p.size())
	cards = append(cards, x)
	for _, r := range p.naturals {
		cards = append(cards, s.take(si, r))
	}
	cards = append(cards, s.takeJokers(p.jokers())...)

	kind := domain.MeldPureSequence
	if p.jokers() > 0 {
		kind = domain.MeldSequence
	}
	s.descend(group{kind: kind, cards: cards, jokers: p.jokers()})

	s.giveJokers(p.jokers())
	for i := len(p.naturals) - 1; i >= 0; i-- {
		s.give(si, p.naturals[i])
	}
}

func (s *searcher) playSet(x int, r domain.Rank, p setPlan) {
	cards := make([]int, 0, 1+len(p.suits)+p.pad)
	cards = append(cards, x)
	for _, si := range p.suits {
		cards = append(cards, s.take(si, r))
	}
	cards = append(cards, s.takeJokers(p.pad)...)

	s.descend(group{kind: domain.MeldSet, cards: cards, jokers: p.pad})

	s.giveJokers(p.pad)
	for i := len(p.suits) - 1; i >= 0; i-- {
		s.give(p.suits[i], r)
	}
}

func (s *searcher) descend(g group) {
	s.groups = append(s.groups, g)
	s.search()
	s.groups = s.groups[:len(s.groups)-1]
}

// leaf scores a complete assignment of the natural cards. Jokers nobody used
// are placed first.
func (s *searcher) leaf() {
	groups := cloneGroups(s.groups)
	spare := append([]int(nil), s.jokers[s.jokersUsed:]...)
	groups, spare = s.attachJokers(groups, spare)

	sc := score{points: s.points, deadCards: len(s.dead) + len(spare)}
	melded := 0
	for _, g := range groups {
		melded += len(g.cards)
		switch g.kind {
		case domain.MeldPureSequence:
			sc.hasPure = true
			sc.sequences++
		case domain.MeldSequence:
			sc.sequences++
		}
	}
	if melded == domain.HandSize && sc.deadCards == 1 {
		sc.points, sc.deadCards = 0, 0
	}

	if s.found && !sc.betterThan(s.best) {
		return
	}
	s.found = true
	s.best = sc
	s.bestGroups = groups
	s.bestDead = append(append([]int(nil), s.dead...), spare...)
}

// attachJokers turns three or more spare jokers into a joker-only sequence and
// pushes the rest into melds that can take them. A pure sequence only takes a
// joker while another pure sequence remains.
func (s *searcher) attachJokers(groups []group, spare []int) ([]group, []int) {
	if len(spare) >= domain.MinMeldSize {
		n := min(len(spare), domain.MaxSequenceSize)
		groups = append(groups, group{kind: domain.MeldSequence, cards: spare[:n:n], jokers: n})
		spare = spare[n:]
	}

	for len(spare) > 0 {
		i := s.roomFor(groups, spare[0])
		if i < 0 {
			break
		}
		g := &groups[i]
		g.cards = append(g.cards, spare[0])
		g.jokers++
		if g.kind == domain.MeldPureSequence {
			g.kind = domain.MeldSequence
		}
		spare = spare[1:]
	}
	return groups, spare
}

func (s *searcher) roomFor(groups []group, joker int) int {
	pure := 0
	for _, g := range groups {
		if g.kind == domain.MeldPureSequence {
			pure++
		}
	}
	fits := func(g group) bool {
		cards := append(s.cardsOf(g.cards), s.hand[joker])
		_, ok := domain.ClassifyMeld(cards)
		return ok
	}

	for i, g := range groups {
		if g.kind != domain.MeldPureSequence && fits(g) {
			return i
		}
	}
	if pure < 2 {
		return -1
	}
	for i, g := range groups {
		if g.kind == domain.MeldPureSequence && fits(g) {
			return i
		}
	}
	return -1
}

func (s *searcher) cardsOf(idx []int) []domain.Card {
	out := make([]domain.Card, len(idx))
	for i, j := range idx {
		out[i] = s.hand[j]
	}
	return out
}

func (s *searcher) result() Arrangement {
	out := Arrangement{Melds: []domain.Meld{}, Deadwood: []domain.Card{}}
	dead := append([]int(nil), s.bestDead...)
	for _, g := range s.bestGroups {
		if m, ok := domain.ClassifyMeld(s.cardsOf(g.cards)); ok {
			out.Melds = append(out.Melds, m)
			continue
		}
		dead = append(dead, g.cards...)
	}
	sort.Ints(dead)
	for _, i := range dead {
		out.Deadwood = append(out.Deadwood, s.hand[i])
	}
	return out
}

func cloneGroups(groups []group) []group {
	out := make([]group, len(groups))
	for i, g := range groups {
		out[i] = group{kind: g.kind, cards: append([]int(nil), g.cards...), jokers: g.jokers}
	}
	return out
}
