package nakama

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sukhmal/RummyScorer-sub000/internal/app"
	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

type playerRequest struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}

type createGameRequest struct {
	Name    string            `json:"name"`
	Preset  string            `json:"preset"`
	Config  domain.GameConfig `json:"config"`
	Players []playerRequest   `json:"players"`
}

type gameRequest struct {
	GameID string `json:"gameId"`
}

type roundRequest struct {
	GameID  string              `json:"gameId"`
	RoundID string              `json:"roundId,omitempty"`
	Scores  []domain.ScoreInput `json:"scores"`
}

type listRequest struct {
	Limit int `json:"limit"`
}

type handRequest struct {
	Cards    []string `json:"cards"`
	WildRank string   `json:"wildRank,omitempty"`
}

type declarationRequest struct {
	Melds    [][]string `json:"melds"`
	Deadwood []string   `json:"deadwood"`
	WildRank string     `json:"wildRank,omitempty"`
}

type shareRequest struct {
	Token string `json:"token"`
}

type eventResponse struct {
	Kind    app.EventKind `json:"kind"`
	Payload any           `json:"payload"`
}

type gameResponse struct {
	Game      *domain.Game    `json:"game"`
	Status    domain.Status   `json:"status"`
	Standings []domain.Player `json:"standings"`
	Round     *domain.Round   `json:"round,omitempty"`
	Events    []eventResponse `json:"events,omitempty"`
	Warning   string          `json:"warning,omitempty"`
}

type listResponse struct {
	Games []ports.GameSummary `json:"games"`
}

type shareResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type transferResponse struct {
	UserID string `json:"userId"`
	Amount int64  `json:"amount"`
}

type settleResponse struct {
	GameID         string             `json:"gameId"`
	AlreadySettled bool               `json:"alreadySettled"`
	Transfers      []transferResponse `json:"transfers"`
	Balances       map[string]int64   `json:"balances"`
	Warning        string             `json:"warning,omitempty"`
}

type chipsResponse struct {
	Balance int64 `json:"balance"`
}

func seatsFromRequest(players []playerRequest) []app.Seat {
	seats := make([]app.Seat, len(players))
	for i, p := range players {
		id := p.ID
		if p.UserID != "" {
			id = p.UserID
		}
		seats[i] = app.Seat{ID: id, Name: p.Name}
	}
	return seats
}

func newGameResponse(game *domain.Game, res app.Result) gameResponse {
	out := gameResponse{
		Game:      game,
		Status:    game.Status(),
		Standings: game.Standings(),
		Round:     res.Round,
	}
	for _, ev := range res.Events {
		out.Events = append(out.Events, eventResponse{Kind: ev.Kind, Payload: ev.Payload})
	}
	if res.PersistErr != nil {
		out.Warning = "game could not be saved; changes may be lost"
	}
	return out
}

// parseCards reads card codes and gives them ids continuing from next.
func parseCards(codes []string, next *int, wild domain.Rank) ([]domain.Card, error) {
	cards := make([]domain.Card, 0, len(codes))
	for _, code := range codes {
		*next++
		c, err := domain.ParseCard(fmt.Sprintf("c%d", *next), code)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	if wild != domain.RankNone {
		cards = domain.MarkWildJokers(cards, wild)
	}
	return cards, nil
}

func parseWildRank(code string) (domain.Rank, error) {
	if code == "" {
		return domain.RankNone, nil
	}
	return domain.ParseRank(code)
}

func marshalResponse(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", errInternal
	}
	return string(b), nil
}

func unmarshalPayload(payload string, v any) error {
	if payload == "" {
		return errInvalidPayload
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return errInvalidPayload
	}
	return nil
}
