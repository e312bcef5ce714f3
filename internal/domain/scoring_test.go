package domain

import (
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"
)

var testNow = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func newTestGame(t *testing.T, cfg GameConfig, playerCount int) *Game {
	t.Helper()
	players := make([]Player, playerCount)
	for i := range players {
		players[i] = Player{ID: fmt.Sprintf("p%d", i+1), Name: fmt.Sprintf("Player %d", i+1)}
	}
	g, err := NewGame("g1", "test", cfg, players, testNow)
	if err != nil {
		t.Fatalf("NewGame error: %v", err)
	}
	return g
}

// win builds inputs where the first id declares and the rest score the given points.
func win(winner string, others map[string]int) []ScoreInput {
	inputs := []ScoreInput{{PlayerID: winner, IsDeclared: true}}
	for id, pts := range others {
		inputs = append(inputs, ScoreInput{PlayerID: id, Points: pts})
	}
	return inputs
}

func addRound(t *testing.T, g *Game, n int, inputs []ScoreInput) *Round {
	t.Helper()
	r, err := g.AddRound(fmt.Sprintf("r%d", n), inputs, testNow.Add(time.Duration(n)*time.Minute))
	if err != nil {
		t.Fatalf("AddRound(r%d) error: %v", n, err)
	}
	return r
}

func TestSettlePoints(t *testing.T) {
	tests := []struct {
		name    string
		variant Variant
		in      ScoreInput
		want    int
	}{
		{name: "declared winner", variant: VariantPool, in: ScoreInput{Points: 40, IsDeclared: true}, want: 0},
		{name: "pool invalid declaration", variant: VariantPool, in: ScoreInput{Points: 12, HasInvalidDeclaration: true}, want: 80},
		{name: "points invalid declaration capped", variant: VariantPoints, in: ScoreInput{Points: 95, HasInvalidDeclaration: true}, want: 80},
		{name: "deals invalid declaration entered", variant: VariantDeals, in: ScoreInput{Points: 60, HasInvalidDeclaration: true}, want: 60},
		{name: "drop value", variant: VariantPool, in: ScoreInput{Points: 25}, want: 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GameConfig{Variant: tt.variant}.WithDefaults()
			if got := cfg.SettlePoints(tt.in); got != tt.want {
				t.Fatalf("SettlePoints() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddRoundRejectsBadSubmissions(t *testing.T) {
	tests := []struct {
		name   string
		inputs []ScoreInput
		want   error
	}{
		{name: "no winner", inputs: []ScoreInput{{PlayerID: "p1", Points: 10}, {PlayerID: "p2", Points: 20}}, want: ErrNoWinner},
		{name: "two winners", inputs: []ScoreInput{{PlayerID: "p1", IsDeclared: true}, {PlayerID: "p2", IsDeclared: true}}, want: ErrMultipleWinners},
		{name: "unknown player", inputs: []ScoreInput{{PlayerID: "p1", IsDeclared: true}, {PlayerID: "zz", Points: 3}}, want: ErrUnknownPlayer},
		{name: "duplicate player", inputs: []ScoreInput{{PlayerID: "p1", IsDeclared: true}, {PlayerID: "p2", Points: 3}, {PlayerID: "p2", Points: 4}}, want: ErrDuplicatePlayer},
		{name: "negative points", inputs: []ScoreInput{{PlayerID: "p1", IsDeclared: true}, {PlayerID: "p2", Points: -3}}, want: ErrNegativePoints},
		{name: "declared and invalid", inputs: []ScoreInput{{PlayerID: "p1", IsDeclared: true, HasInvalidDeclaration: true}}, want: ErrConflictingDeclaration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, GameConfig{Variant: VariantPool}, 3)
			before := g.Clone()
			if _, err := g.AddRound("r1", tt.inputs, testNow); !errors.Is(err, tt.want) {
				t.Fatalf("AddRound() error = %v, want %v", err, tt.want)
			}
			if !reflect.DeepEqual(g, before) {
				t.Fatalf("rejected submission must not mutate the game")
			}
		})
	}
}

func TestNoWinnerMessages(t *testing.T) {
	if ErrNoWinner.Error() != "no winner marked" {
		t.Fatalf("unexpected message %q", ErrNoWinner.Error())
	}
	if ErrMultipleWinners.Error() != "only one player can be the winner" {
		t.Fatalf("unexpected message %q", ErrMultipleWinners.Error())
	}
}

func TestPoolEliminationAndWinner(t *testing.T) {
	// P1 sits at 90 and takes 15 more: 105 > 101 eliminates P1, leaving P2.
	g := newTestGame(t, GameConfig{Variant: VariantPool, PoolLimit: 101}, 2)
	addRound(t, g, 1, win("p2", map[string]int{"p1": 90}))
	if p, _ := g.Player("p1"); p.IsEliminated {
		t.Fatalf("90 must not eliminate")
	}
	if g.Status() != StatusInProgress {
		t.Fatalf("status = %s, want in_progress", g.Status())
	}

	addRound(t, g, 2, win("p2", map[string]int{"p1": 15}))
	p1, _ := g.Player("p1")
	if p1.Score != 105 || !p1.IsEliminated {
		t.Fatalf("p1 = %+v, want score 105 eliminated", p1)
	}
	if g.Winner != "p2" || g.CompletedAt == nil || g.Status() != StatusCompleted {
		t.Fatalf("winner = %q completedAt = %v, want p2", g.Winner, g.CompletedAt)
	}

	if _, err := g.AddRound("r3", win("p2", map[string]int{"p1": 2}), testNow); !errors.Is(err, ErrGameCompleted) {
		t.Fatalf("AddRound after completion error = %v, want ErrGameCompleted", err)
	}
}

func TestPoolScoreAtLimitSurvives(t *testing.T) {
	g := newTestGame(t, GameConfig{Variant: VariantPool, PoolLimit: 101}, 3)
	addRound(t, g, 1, win("p3", map[string]int{"p1": 80, "p2": 10}))
	addRound(t, g, 2, win("p3", map[string]int{"p1": 21, "p2": 10}))
	p1, _ := g.Player("p1")
	if p1.Score != 101 || p1.IsEliminated {
		t.Fatalf("score exactly at the limit must survive: %+v", p1)
	}

	_, err := g.AddRound("r3", win("p3", map[string]int{"p1": 1}), testNow)
	if err != nil {
		t.Fatalf("AddRound error: %v", err)
	}
	if p1, _ = g.Player("p1"); !p1.IsEliminated {
		t.Fatalf("102 must eliminate")
	}
	if _, err := g.AddRound("r4", win("p3", map[string]int{"p1": 0}), testNow); !errors.Is(err, ErrPlayerEliminated) {
		t.Fatalf("eliminated player scoring error = %v, want ErrPlayerEliminated", err)
	}
	if g.Winner != "" {
		t.Fatalf("two players remain, no winner expected, got %q", g.Winner)
	}
}

func TestPoolAllEliminatedLowestWins(t *testing.T) {
	g := newTestGame(t, GameConfig{Variant: VariantPool, PoolLimit: 101}, 3)
	addRound(t, g, 1, win("p1", map[string]int{"p2": 80, "p3": 80}))
	addRound(t, g, 2, []ScoreInput{
		{PlayerID: "p1", Points: 102},
		{PlayerID: "p2", IsDeclared: true},
		{PlayerID: "p3", Points: 40},
	})
	// p1 102, p2 80, p3 120: p2 is the only one left.
	if g.Winner != "p2" {
		t.Fatalf("winner = %q, want p2", g.Winner)
	}
}

func TestDealsWinner(t *testing.T) {
	g := newTestGame(t, GameConfig{Variant: VariantDeals, NumberOfDeals: 2}, 2)
	addRound(t, g, 1, win("p2", map[string]int{"p1": 40}))
	if g.Winner != "" || g.CurrentDeal != 2 {
		t.Fatalf("after deal 1: winner %q currentDeal %d", g.Winner, g.CurrentDeal)
	}
	addRound(t, g, 2, win("p1", map[string]int{"p2": 35}))
	if g.Winner != "p2" {
		t.Fatalf("winner = %q, want p2 (35 < 40)", g.Winner)
	}
	if g.CompletedAt == nil {
		t.Fatalf("completedAt must be set")
	}
}

func TestPointsGameNeverCompletes(t *testing.T) {
	g := newTestGame(t, GameConfig{Variant: VariantPoints, PointValue: 2}, 3)
	for i := 1; i <= 5; i++ {
		addRound(t, g, i, win("p1", map[string]int{"p2": 20, "p3": 30}))
	}
	if g.Winner != "" || g.Status() != StatusInProgress {
		t.Fatalf("points games have no automatic winner")
	}
	net := g.Settlement()
	want := map[string]int{"p1": 500, "p2": -200, "p3": -300}
	if !reflect.DeepEqual(net, want) {
		t.Fatalf("Settlement() = %v, want %v", net, want)
	}
}

func TestReplayMatchesIncrementalPlay(t *testing.T) {
	g := newTestGame(t, GameConfig{Variant: VariantPool, PoolLimit: 201}, 4)
	rounds := [][]ScoreInput{
		win("p1", map[string]int{"p2": 40, "p3": 25, "p4": 80}),
		win("p2", map[string]int{"p1": 12, "p3": 50, "p4": 80}),
		win("p3", map[string]int{"p1": 33, "p2": 7, "p4": 60}),
	}
	for i, in := range rounds {
		addRound(t, g, i+1, in)
	}

	for _, p := range g.Players {
		sum := 0
		for _, r := range g.Rounds {
			sum += r.Scores[p.ID]
		}
		if p.Score != sum {
			t.Fatalf("player %s score %d, sum of rounds %d", p.ID, p.Score, sum)
		}
	}

	before := g.Clone()
	if _, err := g.UpdateRound("r2", rounds[1], testNow.Add(time.Hour)); err != nil {
		t.Fatalf("UpdateRound error: %v", err)
	}
	if !reflect.DeepEqual(g.Players, before.Players) || g.Winner != before.Winner || g.CurrentDeal != before.CurrentDeal {
		t.Fatalf("replaying the same scores must not change standings:\n got %+v\nwant %+v", g.Players, before.Players)
	}
	if !reflect.DeepEqual(g.CompletedAt, before.CompletedAt) {
		t.Fatalf("completedAt changed: %v -> %v", before.CompletedAt, g.CompletedAt)
	}
}

func TestUpdateRoundRevokesAndRederivesWinner(t *testing.T) {
	// Three players in Pool 101. Round 2 knocks p1 out, round 3 knocks p3 out,
	// so p2 wins. Editing round 2 brings p1 back below the limit.
	g := newTestGame(t, GameConfig{Variant: VariantPool, PoolLimit: 101}, 3)
	addRound(t, g, 1, win("p2", map[string]int{"p1": 60, "p3": 60}))
	addRound(t, g, 2, win("p2", map[string]int{"p1": 50, "p3": 10}))
	if p1, _ := g.Player("p1"); !p1.IsEliminated {
		t.Fatalf("p1 should be out at 110")
	}
	addRound(t, g, 3, win("p2", map[string]int{"p3": 40}))
	if g.Winner != "p2" {
		t.Fatalf("winner = %q, want p2", g.Winner)
	}

	if _, err := g.UpdateRound("r2", win("p2", map[string]int{"p1": 20, "p3": 10}), testNow.Add(time.Hour)); err != nil {
		t.Fatalf("UpdateRound error: %v", err)
	}
	p1, _ := g.Player("p1")
	if p1.IsEliminated || p1.Score != 80 {
		t.Fatalf("p1 = %+v, want 80 and back in the game", p1)
	}
	p3, _ := g.Player("p3")
	if !p3.IsEliminated || p3.Score != 110 {
		t.Fatalf("p3 = %+v, want 110 eliminated after replaying round 3", p3)
	}
	if g.Winner != "" || g.CompletedAt != nil || g.Status() != StatusInProgress {
		t.Fatalf("winner must be revoked, got %q / %v", g.Winner, g.CompletedAt)
	}
	if r := g.Rounds[1]; r.Scores["p1"] != 20 || r.Winner != "p2" {
		t.Fatalf("round 2 not replaced: %+v", r)
	}

	// Put p1 back over the limit through round 1: the winner is derived again.
	if _, err := g.UpdateRound("r1", win("p2", map[string]int{"p1": 90, "p3": 60}), testNow.Add(2*time.Hour)); err != nil {
		t.Fatalf("UpdateRound error: %v", err)
	}
	if g.Winner != "p2" || g.CompletedAt == nil || !g.CompletedAt.Equal(testNow.Add(2*time.Hour)) {
		t.Fatalf("winner = %q completedAt = %v, want p2 at edit time", g.Winner, g.CompletedAt)
	}
}

func TestUpdateRoundErrors(t *testing.T) {
	g := newTestGame(t, GameConfig{Variant: VariantPool}, 2)
	addRound(t, g, 1, win("p1", map[string]int{"p2": 20}))
	before := g.Clone()

	if _, err := g.UpdateRound("missing", win("p1", map[string]int{"p2": 1}), testNow); !errors.Is(err, ErrRoundNotFound) {
		t.Fatalf("error = %v, want ErrRoundNotFound", err)
	}
	if _, err := g.UpdateRound("r1", []ScoreInput{{PlayerID: "p2", Points: 1}}, testNow); !errors.Is(err, ErrNoWinner) {
		t.Fatalf("error = %v, want ErrNoWinner", err)
	}
	if !reflect.DeepEqual(g, before) {
		t.Fatalf("failed update must not mutate the game")
	}
}

func TestSettledGameIsClosed(t *testing.T) {
	g := newTestGame(t, GameConfig{Variant: VariantPoints}, 2)
	addRound(t, g, 1, win("p1", map[string]int{"p2": 20}))
	settled := testNow.Add(time.Hour)
	g.SettledAt = &settled
	before := g.Clone()

	if _, err := g.AddRound("r2", win("p2", map[string]int{"p1": 10}), testNow); !errors.Is(err, ErrGameSettled) {
		t.Fatalf("AddRound error = %v, want ErrGameSettled", err)
	}
	if _, err := g.UpdateRound("r1", win("p2", map[string]int{"p1": 10}), testNow); !errors.Is(err, ErrGameSettled) {
		t.Fatalf("UpdateRound error = %v, want ErrGameSettled", err)
	}
	if !reflect.DeepEqual(g, before) {
		t.Fatalf("a settled game must not change")
	}
}

func TestPoolScoresNeverDecrease(t *testing.T) {
	g := newTestGame(t, GameConfig{Variant: VariantPool, PoolLimit: 101}, 3)
	prev := map[string]int{}
	eliminated := map[string]bool{}
	inputs := [][]ScoreInput{
		win("p1", map[string]int{"p2": 30, "p3": 45}),
		win("p2", map[string]int{"p1": 80, "p3": 45}),
		win("p3", map[string]int{"p1": 30, "p2": 20}),
	}
	for i, in := range inputs {
		addRound(t, g, i+1, in)
		for _, p := range g.Players {
			if p.Score < prev[p.ID] {
				t.Fatalf("score of %s decreased", p.ID)
			}
			if eliminated[p.ID] && !p.IsEliminated {
				t.Fatalf("%s came back without an edit", p.ID)
			}
			if p.IsEliminated != (p.Score > 101) {
				t.Fatalf("%s eliminated=%v at %d", p.ID, p.IsEliminated, p.Score)
			}
			prev[p.ID] = p.Score
			eliminated[p.ID] = p.IsEliminated
		}
	}
}

func TestNewGameValidation(t *testing.T) {
	if _, err := NewGame("g", "", GameConfig{Variant: "bogus"}, []Player{{ID: "a"}, {ID: "b"}}, testNow); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
	if _, err := NewGame("g", "", GameConfig{Variant: VariantPool}, []Player{{ID: "a"}}, testNow); !errors.Is(err, ErrTooFewPlayers) {
		t.Fatalf("error = %v, want ErrTooFewPlayers", err)
	}
	if _, err := NewGame("g", "", GameConfig{Variant: VariantPool}, []Player{{ID: "a"}, {ID: "a"}}, testNow); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig for duplicate ids", err)
	}

	g := newTestGame(t, GameConfig{Variant: VariantPool}, 2)
	want := GameConfig{Variant: VariantPool, PoolLimit: 101, NumberOfDeals: 2, PointValue: 1, FirstDropPenalty: 25, MiddleDropPenalty: 50}
	if g.Config != want {
		t.Fatalf("config = %+v, want defaults %+v", g.Config, want)
	}
	if g.Status() != StatusEmpty || g.CurrentDeal != 1 {
		t.Fatalf("new game status %s deal %d", g.Status(), g.CurrentDeal)
	}
	if g.Config.DropPenalty(DropMiddle) != 50 || g.Config.DropPenalty(DropFirst) != 25 {
		t.Fatalf("unexpected drop penalties")
	}
}
