package app

import (
	"context"
	"fmt"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

// SettlementResult lists the chip movements of a settled Points game.
type SettlementResult struct {
	Transfers      []ports.ChipTransfer
	AlreadySettled bool
	// PersistErr is set when the closed game could not be saved.
	PersistErr error
}

// Transfers converts a Points game's net standings into chip transfers in
// seating order. Players who broke even are left out.
func Transfers(game *domain.Game) []ports.ChipTransfer {
	net := game.Settlement()
	out := make([]ports.ChipTransfer, 0, len(game.Players))
	for _, p := range game.Players {
		amount := net[p.ID]
		if amount == 0 {
			continue
		}
		out = append(out, ports.ChipTransfer{
			UserID: p.ID,
			Amount: int64(amount),
			Metadata: map[string]interface{}{
				"reason":  "rummy_points_settlement",
				"game_id": game.ID,
			},
		})
	}
	return out
}

// SettleChips pays out a Points game through the economy, once per game, and
// closes the game to further rounds.
func (s *Service) SettleChips(ctx context.Context, game *domain.Game, economy ports.EconomyPort) (SettlementResult, error) {
	if game.Config.Variant != domain.VariantPoints {
		return SettlementResult{}, ErrNotPointsGame
	}
	if len(game.Rounds) == 0 {
		return SettlementResult{}, ErrNothingToSettle
	}

	transfers := Transfers(game)
	settled, err := economy.SettleOnce(ctx, game.ID, transfers)
	if err != nil {
		return SettlementResult{}, fmt.Errorf("failed to settle game %s: %w", game.ID, err)
	}
	res := SettlementResult{Transfers: transfers, AlreadySettled: !settled}
	if game.SettledAt == nil {
		now := s.now()
		game.SettledAt = &now
		res.PersistErr = s.persist(ctx, game)
	}

	if res.AlreadySettled {
		s.logger.Info("game already settled", "game", game.ID)
	} else {
		s.logger.Info("game settled", "game", game.ID, "transfers", len(transfers))
	}
	return res, nil
}
