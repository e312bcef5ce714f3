package arranger

import (
	"math/bits"
	"sort"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
)

// runPlan extends a run upwards from its lowest natural card. naturals are the
// ranks above it taken as real cards; fills are jokers standing in for ranks
// inside the run; pad jokers bring a two-card run up to the minimum size.
type runPlan struct {
	naturals []domain.Rank
	fills    int
	pad      int
}

func (p runPlan) jokers() int { return p.fills + p.pad }

func (p runPlan) size() int { return 1 + len(p.naturals) + p.jokers() }

// setPlan joins the lowest card with same-rank cards of other suits.
type setPlan struct {
	suits []int
	pad   int
}

// runPlans lists the runs of suit si that start at rank lo and end on a
// natural card. Ranks above lo may be skipped with a joker when no card of
// that rank is left, or when the card could be needed by a set instead.
// Pure runs come first, longest first, then joker runs by size.
func (s *searcher) runPlans(si int, lo domain.Rank) []runPlan {
	var plans []runPlan
	jokers := s.jokersLeft()

	var walk func(r domain.Rank, naturals []domain.Rank, fills int)
	walk = func(r domain.Rank, naturals []domain.Rank, fills int) {
		if r > domain.RankKing {
			return
		}
		if s.avail[si][r] > 0 {
			next := append(append([]domain.Rank(nil), naturals...), r)
			length := int(r-lo) + 1
			pad := max(0, domain.MinMeldSize-length)
			if fills+pad <= jokers {
				plans = append(plans, runPlan{naturals: next, fills: fills, pad: pad})
			}
			walk(r+1, next, fills)
		}
		if fills < jokers && (s.avail[si][r] == 0 || s.rankElsewhere(si, r)) {
			walk(r+1, naturals, fills+1)
		}
	}
	walk(lo+1, nil, 0)

	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i], plans[j]
		if (a.jokers() == 0) != (b.jokers() == 0) {
			return a.jokers() == 0
		}
		if a.size() != b.size() {
			return a.size() > b.size()
		}
		return a.jokers() < b.jokers()
	})
	return plans
}

// setPlans lists the sets the lowest card of rank r can anchor, most natural
// cards first. Cards of earlier suits are already placed, so only later suits
// can still hold this rank.
func (s *searcher) setPlans(si int, r domain.Rank) []setPlan {
	var others []int
	for j := 0; j < suitCount; j++ {
		if j != si && s.avail[j][r] > 0 {
			others = append(others, j)
		}
	}

	var plans []setPlan
	jokers := s.jokersLeft()
	for mask := (1 << len(others)) - 1; mask >= 0; mask-- {
		size := 1 + bits.OnesCount(uint(mask))
		if size > domain.MaxSetSize {
			continue
		}
		pad := max(0, domain.MinMeldSize-size)
		if pad > jokers {
			continue
		}
		var suits []int
		for k, j := range others {
			if mask&(1<<k) != 0 {
				suits = append(suits, j)
			}
		}
		plans = append(plans, setPlan{suits: suits, pad: pad})
	}

	sort.SliceStable(plans, func(i, j int) bool {
		return len(plans[i].suits) > len(plans[j].suits)
	})
	return plans
}

// rankElsewhere reports whether another suit still holds a card of rank r.
func (s *searcher) rankElsewhere(si int, r domain.Rank) bool {
	for j := 0; j < suitCount; j++ {
		if j != si && s.avail[j][r] > 0 {
			return true
		}
	}
	return false
}
