package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

var (
	ErrNotPointsGame    = errors.New("only points games settle in chips")
	ErrNothingToSettle  = errors.New("no rounds to settle")
	ErrRepositoryNotSet = errors.New("no game repository configured")
)

// Seat describes a player joining a new game. An empty ID gets a generated
// one; an empty Name becomes "Player N".
type Seat struct {
	ID   string
	Name string
}

// Result carries the outcome of a state change.
type Result struct {
	Events []Event
	Round  *domain.Round
	// PersistErr is set when saving failed. The in-memory game is still
	// updated and stays the source of truth.
	PersistErr error
}

// Service contains the round-scoring use-cases. It persists through the
// repository after every successful change, best effort.
type Service struct {
	repo   ports.GameRepository
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// NewService constructs a Service. repo may be nil to keep games in memory
// only; a nil logger discards output.
func NewService(repo ports.GameRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  uuid.NewString,
	}
}

// StartGame creates a game for the seats in seating order and saves it.
func (s *Service) StartGame(ctx context.Context, name string, cfg domain.GameConfig, seats []Seat) (*domain.Game, Result, error) {
	if len(seats) < MinPlayersToStartGame {
		return nil, Result{}, domain.ErrTooFewPlayers
	}

	players := make([]domain.Player, len(seats))
	for i, seat := range seats {
		p := domain.Player{ID: seat.ID, Name: seat.Name}
		if p.ID == "" {
			p.ID = GuestIDPrefix + s.newID()
		}
		if p.Name == "" {
			p.Name = fmt.Sprintf("Player %d", i+1)
		}
		players[i] = p
	}

	game, err := domain.NewGame(s.newID(), name, cfg, players, s.now())
	if err != nil {
		return nil, Result{}, err
	}

	res := Result{Events: []Event{{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{GameID: game.ID, Config: game.Config, Players: game.ActivePlayers()},
	}}}
	res.PersistErr = s.persist(ctx, game)

	s.logger.Info("game started", "game", game.ID, "variant", game.Config.Variant, "players", len(players))
	return game, res, nil
}

// Load fetches a stored game.
func (s *Service) Load(ctx context.Context, id string) (*domain.Game, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotSet
	}
	return s.repo.Load(ctx, id)
}

// AddRound settles a new round on the game. A rejected submission leaves the
// game untouched.
func (s *Service) AddRound(ctx context.Context, game *domain.Game, inputs []domain.ScoreInput) (Result, error) {
	before := game.Clone()
	round, err := game.AddRound(s.newID(), inputs, s.now())
	if err != nil {
		s.logger.Debug("round rejected", "game", game.ID, "error", err)
		return Result{}, err
	}
	return s.finish(ctx, before, game, EventRoundAdded, round), nil
}

// UpdateRound edits a recorded round and replays the game.
func (s *Service) UpdateRound(ctx context.Context, game *domain.Game, roundID string, inputs []domain.ScoreInput) (Result, error) {
	before := game.Clone()
	round, err := game.UpdateRound(roundID, inputs, s.now())
	if err != nil {
		s.logger.Debug("round edit rejected", "game", game.ID, "round", roundID, "error", err)
		return Result{}, err
	}
	return s.finish(ctx, before, game, EventRoundUpdated, round), nil
}

func (s *Service) finish(ctx context.Context, before, game *domain.Game, kind EventKind, round *domain.Round) Result {
	res := Result{
		Events: diffEvents(before, game, kind, *round),
		Round:  round,
	}
	res.PersistErr = s.persist(ctx, game)

	log := s.logger.With("game", game.ID, "round", round.ID)
	log.Info(string(kind), "deal", game.CurrentDeal, "status", game.Status())
	if game.Winner != "" && before.Winner != game.Winner {
		log.Info("game completed", "winner", game.Winner)
	}
	return res
}

func (s *Service) persist(ctx context.Context, game *domain.Game) error {
	if s.repo == nil {
		return nil
	}
	if err := s.repo.Save(ctx, game); err != nil {
		s.logger.Warn("failed to save game", "game", game.ID, "error", err)
		return fmt.Errorf("save game %s: %w", game.ID, err)
	}
	return nil
}
