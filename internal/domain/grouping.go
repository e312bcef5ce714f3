package domain

import "sort"

// Grouping records which manual group each card sits in. It lives outside
// Card so the hand model carries no UI state.
type Grouping struct {
	groups map[string]int
}

// NewGrouping returns an empty grouping.
func NewGrouping() *Grouping {
	return &Grouping{groups: make(map[string]int)}
}

// Assign places the cards in the group. A card belongs to one group at most.
func (g *Grouping) Assign(groupID int, cards ...Card) {
	for _, c := range cards {
		g.groups[c.ID] = groupID
	}
}

// Ungroup removes the cards from whatever group they were in.
func (g *Grouping) Ungroup(cards ...Card) {
	for _, c := range cards {
		delete(g.groups, c.ID)
	}
}

// GroupOf returns the group of a card.
func (g *Grouping) GroupOf(cardID string) (int, bool) {
	id, ok := g.groups[cardID]
	return id, ok
}

// Prune drops entries for cards no longer in the hand.
func (g *Grouping) Prune(hand []Card) {
	keep := make(map[string]bool, len(hand))
	for _, c := range hand {
		keep[c.ID] = true
	}
	for id := range g.groups {
		if !keep[id] {
			delete(g.groups, id)
		}
	}
}

// Groups returns the grouped cards of the hand by ascending group id, plus the
// cards that are in no group. Card order inside a group follows the hand.
func (g *Grouping) Groups(hand []Card) (groups [][]Card, ungrouped []Card) {
	byID := make(map[int][]Card)
	var ids []int
	for _, c := range hand {
		gid, ok := g.groups[c.ID]
		if !ok {
			ungrouped = append(ungrouped, c)
			continue
		}
		if _, seen := byID[gid]; !seen {
			ids = append(ids, gid)
		}
		byID[gid] = append(byID[gid], c)
	}
	sort.Ints(ids)
	for _, id := range ids {
		groups = append(groups, byID[id])
	}
	return groups, ungrouped
}

// Partition classifies every group. Groups that are not valid melds, and
// ungrouped cards, become deadwood.
func (g *Grouping) Partition(hand []Card) (melds []Meld, deadwood []Card) {
	groups, ungrouped := g.Groups(hand)
	for _, grp := range groups {
		if m, ok := ClassifyMeld(grp); ok {
			melds = append(melds, m)
			continue
		}
		deadwood = append(deadwood, grp...)
	}
	deadwood = append(deadwood, ungrouped...)
	return melds, deadwood
}
