package app

import "github.com/sukhmal/RummyScorer-sub000/internal/domain"

// EventKind identifies emitted game events for observers and Nakama dispatch.
type EventKind string

const (
	EventGameStarted      EventKind = "game_started"
	EventRoundAdded       EventKind = "round_added"
	EventRoundUpdated     EventKind = "round_updated"
	EventPlayerEliminated EventKind = "player_eliminated"
	EventPlayerReinstated EventKind = "player_reinstated"
	EventGameCompleted    EventKind = "game_completed"
	EventGameReopened     EventKind = "game_reopened"
)

// Event is an app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // player IDs; empty means broadcast
}

type GameStartedPayload struct {
	GameID  string            `json:"gameId"`
	Config  domain.GameConfig `json:"config"`
	Players []domain.Player   `json:"players"`
}

type RoundPayload struct {
	GameID string       `json:"gameId"`
	Round  domain.Round `json:"round"`
}

type PlayerPayload struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
}

type GameCompletedPayload struct {
	GameID string `json:"gameId"`
	Winner string `json:"winner"`
}

type GameReopenedPayload struct {
	GameID         string `json:"gameId"`
	PreviousWinner string `json:"previousWinner"`
}

// diffEvents reports what a round submission changed.
func diffEvents(before, after *domain.Game, kind EventKind, round domain.Round) []Event {
	events := []Event{{Kind: kind, Payload: RoundPayload{GameID: after.ID, Round: round}}}

	for _, p := range after.Players {
		prev, ok := before.Player(p.ID)
		if !ok || prev.IsEliminated == p.IsEliminated {
			continue
		}
		k := EventPlayerEliminated
		if !p.IsEliminated {
			k = EventPlayerReinstated
		}
		events = append(events, Event{Kind: k, Payload: PlayerPayload{GameID: after.ID, PlayerID: p.ID, Score: p.Score}})
	}

	if before.Winner != "" && before.Winner != after.Winner {
		events = append(events, Event{Kind: EventGameReopened, Payload: GameReopenedPayload{GameID: after.ID, PreviousWinner: before.Winner}})
	}
	if after.Winner != "" && before.Winner != after.Winner {
		events = append(events, Event{Kind: EventGameCompleted, Payload: GameCompletedPayload{GameID: after.ID, Winner: after.Winner}})
	}
	return events
}
