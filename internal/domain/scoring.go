package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoWinner               = errors.New("no winner marked")
	ErrMultipleWinners        = errors.New("only one player can be the winner")
	ErrUnknownPlayer          = errors.New("player not found")
	ErrDuplicatePlayer        = errors.New("player scored more than once in a round")
	ErrNegativePoints         = errors.New("points must not be negative")
	ErrConflictingDeclaration = errors.New("a declared winner cannot have an invalid declaration")
	ErrPlayerEliminated       = errors.New("player already eliminated")
	ErrGameCompleted          = errors.New("game already completed")
	ErrGameSettled            = errors.New("game already settled")
	ErrRoundNotFound          = errors.New("round not found")
	ErrTooFewPlayers          = errors.New("not enough players")
)

// SettlePoints converts one input into the points charged for the round.
func (c GameConfig) SettlePoints(in ScoreInput) int {
	switch {
	case in.IsDeclared:
		return 0
	case in.HasInvalidDeclaration:
		if c.Variant == VariantPool {
			return PoolInvalidDeclarationPenalty
		}
		return min(in.Points, MaxRoundPoints)
	default:
		return in.Points
	}
}

// SettleRound validates a round submission and returns the settled points per
// player plus the round winner. The game is not modified.
func (g *Game) SettleRound(inputs []ScoreInput) (map[string]int, string, error) {
	winner := ""
	winners := 0
	scores := make(map[string]int, len(inputs))
	for _, in := range inputs {
		if _, ok := g.Player(in.PlayerID); !ok {
			return nil, "", fmt.Errorf("%w: %s", ErrUnknownPlayer, in.PlayerID)
		}
		if _, dup := scores[in.PlayerID]; dup {
			return nil, "", fmt.Errorf("%w: %s", ErrDuplicatePlayer, in.PlayerID)
		}
		if in.Points < 0 {
			return nil, "", fmt.Errorf("%w: %s", ErrNegativePoints, in.PlayerID)
		}
		if in.IsDeclared && in.HasInvalidDeclaration {
			return nil, "", fmt.Errorf("%w: %s", ErrConflictingDeclaration, in.PlayerID)
		}
		if in.IsDeclared {
			winners++
			winner = in.PlayerID
		}
		scores[in.PlayerID] = g.Config.SettlePoints(in)
	}

	switch {
	case winners == 0:
		return nil, "", ErrNoWinner
	case winners > 1:
		return nil, "", ErrMultipleWinners
	}
	return scores, winner, nil
}

// AddRound settles and appends a new round, then updates standings and the
// win state.
func (g *Game) AddRound(id string, inputs []ScoreInput, now time.Time) (*Round, error) {
	if g.Winner != "" {
		return nil, ErrGameCompleted
	}
	if g.SettledAt != nil {
		return nil, ErrGameSettled
	}
	for _, in := range inputs {
		if p, ok := g.Player(in.PlayerID); ok && p.IsEliminated {
			return nil, fmt.Errorf("%w: %s", ErrPlayerEliminated, in.PlayerID)
		}
	}
	scores, winner, err := g.SettleRound(inputs)
	if err != nil {
		return nil, err
	}

	g.Rounds = append(g.Rounds, Round{ID: id, Timestamp: now, Scores: scores, Winner: winner})
	g.applyScores(scores)
	g.CurrentDeal = len(g.Rounds) + 1
	if w := g.evaluateWinner(len(g.Rounds)); w != "" {
		g.Winner = w
		completed := now
		g.CompletedAt = &completed
	}

	r := g.Rounds[len(g.Rounds)-1].clone()
	return &r, nil
}

// UpdateRound replaces the scores of an existing round and rebuilds every
// player's standing by replaying all rounds from the start.
func (g *Game) UpdateRound(roundID string, inputs []ScoreInput, now time.Time) (*Round, error) {
	if g.SettledAt != nil {
		return nil, ErrGameSettled
	}
	idx := -1
	for i := range g.Rounds {
		if g.Rounds[i].ID == roundID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrRoundNotFound, roundID)
	}

	scores, winner, err := g.SettleRound(inputs)
	if err != nil {
		return nil, err
	}
	g.Rounds[idx].Scores = scores
	g.Rounds[idx].Winner = winner
	g.Replay(now)

	r := g.Rounds[idx].clone()
	return &r, nil
}

// Replay recomputes scores, eliminations and the winner from the round list.
// A winner found part-way through stays the winner, as it would have in
// forward play. CompletedAt is kept when the same winner is derived again.
func (g *Game) Replay(now time.Time) {
	prevWinner, prevCompletedAt := g.Winner, g.CompletedAt

	for i := range g.Players {
		g.Players[i].Score = 0
		g.Players[i].IsEliminated = false
	}
	g.Winner = ""
	g.CompletedAt = nil

	for i, r := range g.Rounds {
		g.applyScores(r.Scores)
		if g.Winner == "" {
			g.Winner = g.evaluateWinner(i + 1)
		}
	}
	g.CurrentDeal = len(g.Rounds) + 1

	if g.Winner == "" {
		return
	}
	if g.Winner == prevWinner && prevCompletedAt != nil {
		t := *prevCompletedAt
		g.CompletedAt = &t
		return
	}
	completed := now
	g.CompletedAt = &completed
}

func (g *Game) applyScores(scores map[string]int) {
	for i := range g.Players {
		p := &g.Players[i]
		p.Score += scores[p.ID]
		if g.Config.Variant == VariantPool && p.Score > g.Config.PoolLimit {
			p.IsEliminated = true
		}
	}
}

// evaluateWinner applies the format's win condition after the given number
// of rounds.
func (g *Game) evaluateWinner(roundsPlayed int) string {
	switch g.Config.Variant {
	case VariantPool:
		active := g.ActivePlayers()
		switch len(active) {
		case 0:
			return g.lowestScorer()
		case 1:
			return active[0].ID
		}
	case VariantDeals:
		if roundsPlayed >= g.Config.NumberOfDeals {
			return g.lowestScorer()
		}
	}
	return ""
}

func (g *Game) lowestScorer() string {
	standings := g.Standings()
	if len(standings) == 0 {
		return ""
	}
	return standings[0].ID
}
