package ports

import (
	"context"
	"errors"
	"time"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
)

var ErrGameNotFound = errors.New("game not found")

// GameRepository persists whole game records.
type GameRepository interface {
	// Save stores the game, replacing any earlier record with the same id.
	Save(ctx context.Context, game *domain.Game) error
	// Load returns the game with the given id or ErrGameNotFound.
	Load(ctx context.Context, id string) (*domain.Game, error)
}

// GameSummary is one row of the game history.
type GameSummary struct {
	ID          string         `json:"id"`
	Name        string         `json:"name,omitempty"`
	Variant     domain.Variant `json:"variant"`
	Status      domain.Status  `json:"status"`
	Players     int            `json:"players"`
	Rounds      int            `json:"rounds"`
	Winner      string         `json:"winner,omitempty"`
	StartedAt   time.Time      `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

// GameLister lists stored games, most recently started first.
type GameLister interface {
	List(ctx context.Context, limit int) ([]GameSummary, error)
}

// Summarize builds the history row of a game.
func Summarize(g *domain.Game) GameSummary {
	return GameSummary{
		ID:          g.ID,
		Name:        g.Name,
		Variant:     g.Config.Variant,
		Status:      g.Status(),
		Players:     len(g.Players),
		Rounds:      len(g.Rounds),
		Winner:      g.Winner,
		StartedAt:   g.StartedAt,
		CompletedAt: g.CompletedAt,
	}
}
