package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Variant is the rummy format being scored.
type Variant string

const (
	VariantPool   Variant = "pool"
	VariantPoints Variant = "points"
	VariantDeals  Variant = "deals"
)

// Status is the lifecycle stage of a game.
type Status string

const (
	// StatusEmpty means no round has been recorded yet.
	StatusEmpty Status = "empty"
	// StatusInProgress means rounds are being recorded.
	StatusInProgress Status = "in_progress"
	// StatusCompleted means a winner has been decided.
	StatusCompleted Status = "completed"
)

// DropKind tells when in a round a player dropped.
type DropKind string

const (
	DropFirst  DropKind = "first"
	DropMiddle DropKind = "middle"
)

var ErrInvalidConfig = errors.New("invalid game config")

// GameConfig holds the format options of a game.
type GameConfig struct {
	Variant           Variant `json:"variant"`
	PoolLimit         int     `json:"poolLimit,omitempty"`
	NumberOfDeals     int     `json:"numberOfDeals,omitempty"`
	PointValue        int     `json:"pointValue,omitempty"`
	FirstDropPenalty  int     `json:"firstDropPenalty,omitempty"`
	MiddleDropPenalty int     `json:"middleDropPenalty,omitempty"`
}

// WithDefaults fills unset options with the standard values.
func (c GameConfig) WithDefaults() GameConfig {
	if c.PoolLimit == 0 {
		c.PoolLimit = DefaultPoolLimit
	}
	if c.NumberOfDeals == 0 {
		c.NumberOfDeals = DefaultNumberOfDeals
	}
	if c.PointValue == 0 {
		c.PointValue = DefaultPointValue
	}
	if c.FirstDropPenalty == 0 {
		c.FirstDropPenalty = DefaultFirstDropPenalty
	}
	if c.MiddleDropPenalty == 0 {
		c.MiddleDropPenalty = DefaultMiddleDropPenalty
	}
	return c
}

// Validate checks the variant and that numeric options are positive.
func (c GameConfig) Validate() error {
	switch c.Variant {
	case VariantPool, VariantPoints, VariantDeals:
	default:
		return fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, c.Variant)
	}
	if c.PoolLimit < 0 || c.NumberOfDeals < 0 || c.PointValue < 0 || c.FirstDropPenalty < 0 || c.MiddleDropPenalty < 0 {
		return fmt.Errorf("%w: options must not be negative", ErrInvalidConfig)
	}
	return nil
}

// DropPenalty returns the points charged for a drop.
func (c GameConfig) DropPenalty(kind DropKind) int {
	if kind == DropMiddle {
		return c.MiddleDropPenalty
	}
	return c.FirstDropPenalty
}

// Player is a participant's cumulative standing.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	IsEliminated bool   `json:"isEliminated"`
}

// Round is one settled deal. Scores are keyed by player id and hold settled
// points.
type Round struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Scores    map[string]int `json:"scores"`
	Winner    string         `json:"winner,omitempty"`
}

// ScoreInput carries one player's result for a round into the scorer.
type ScoreInput struct {
	PlayerID              string `json:"playerId"`
	Points                int    `json:"points"`
	IsDeclared            bool   `json:"isDeclared"`
	HasInvalidDeclaration bool   `json:"hasInvalidDeclaration"`
}

// Game is the scoring ledger of one table.
type Game struct {
	ID          string     `json:"id"`
	Name        string     `json:"name,omitempty"`
	Config      GameConfig `json:"config"`
	Players     []Player   `json:"players"`
	Rounds      []Round    `json:"rounds"`
	CurrentDeal int        `json:"currentDeal"`
	StartedAt   time.Time  `json:"startedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Winner      string     `json:"winner,omitempty"`
	// SettledAt is set once a Points game has been paid out. The ledger is
	// closed from then on.
	SettledAt *time.Time `json:"settledAt,omitempty"`
}

// NewGame creates an empty game. Options left at zero take their defaults.
func NewGame(id, name string, cfg GameConfig, players []Player, now time.Time) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(players) < 2 {
		return nil, ErrTooFewPlayers
	}
	seen := make(map[string]bool, len(players))
	for _, p := range players {
		if p.ID == "" || seen[p.ID] {
			return nil, fmt.Errorf("%w: player ids must be unique and non-empty", ErrInvalidConfig)
		}
		seen[p.ID] = true
	}

	ps := make([]Player, len(players))
	for i, p := range players {
		ps[i] = Player{ID: p.ID, Name: p.Name}
	}
	return &Game{
		ID:          id,
		Name:        name,
		Config:      cfg.WithDefaults(),
		Players:     ps,
		Rounds:      []Round{},
		CurrentDeal: 1,
		StartedAt:   now,
	}, nil
}

// Status derives the lifecycle stage.
func (g *Game) Status() Status {
	switch {
	case g.Winner != "":
		return StatusCompleted
	case len(g.Rounds) == 0:
		return StatusEmpty
	default:
		return StatusInProgress
	}
}

// Player returns the player with the given id.
func (g *Game) Player(id string) (*Player, bool) {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i], true
		}
	}
	return nil, false
}

// ActivePlayers returns the players not eliminated, in seating order.
func (g *Game) ActivePlayers() []Player {
	out := make([]Player, 0, len(g.Players))
	for _, p := range g.Players {
		if !p.IsEliminated {
			out = append(out, p)
		}
	}
	return out
}

// Standings returns the players ordered by ascending score; ties keep seating
// order.
func (g *Game) Standings() []Player {
	out := append([]Player(nil), g.Players...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score < out[j].Score })
	return out
}

// Settlement returns each player's net amount for a Points game: every round
// winner collects the loser's points times the point value.
func (g *Game) Settlement() map[string]int {
	net := make(map[string]int, len(g.Players))
	for _, p := range g.Players {
		net[p.ID] = 0
	}
	for _, r := range g.Rounds {
		for pid, pts := range r.Scores {
			if pid == r.Winner {
				continue
			}
			amount := pts * g.Config.PointValue
			net[pid] -= amount
			if r.Winner != "" {
				net[r.Winner] += amount
			}
		}
	}
	return net
}

// Clone returns a deep copy.
func (g *Game) Clone() *Game {
	if g == nil {
		return nil
	}
	out := *g
	out.Players = append([]Player(nil), g.Players...)
	out.Rounds = make([]Round, len(g.Rounds))
	for i, r := range g.Rounds {
		out.Rounds[i] = r.clone()
	}
	if g.CompletedAt != nil {
		t := *g.CompletedAt
		out.CompletedAt = &t
	}
	if g.SettledAt != nil {
		t := *g.SettledAt
		out.SettledAt = &t
	}
	return &out
}

func (r Round) clone() Round {
	scores := make(map[string]int, len(r.Scores))
	for k, v := range r.Scores {
		scores[k] = v
	}
	r.Scores = scores
	return r
}
