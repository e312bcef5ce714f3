package domain

import "sort"

// IsConsecutive reports whether the ranks form an unbroken ascending run once
// sorted. K→A does not wrap.
func IsConsecutive(ranks []Rank) bool {
	if len(ranks) == 0 {
		return false
	}
	sorted := append([]Rank(nil), ranks...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for i := 1; i < len(sorted); i++ {
		if sorted[i] != sorted[i-1]+1 {
			return false
		}
	}
	return true
}

// IsSameRank reports whether every card has the same rank.
func IsSameRank(cards []Card) bool {
	if len(cards) == 0 {
		return false
	}
	r := cards[0].Rank
	for _, c := range cards {
		if c.Rank != r {
			return false
		}
	}
	return true
}

func splitJokers(cards []Card) (naturals, jokers []Card) {
	for _, c := range cards {
		if c.IsJoker() {
			jokers = append(jokers, c)
		} else {
			naturals = append(naturals, c)
		}
	}
	return naturals, jokers
}
