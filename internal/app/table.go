package app

import (
	"context"
	"sync"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
)

// Listener receives a snapshot of the game and the events of every change.
type Listener func(state *domain.Game, events []Event)

// Table holds the live game of one scoring session and notifies listeners
// after each accepted change. Round submissions must come from a single
// writer; subscriptions may come from any goroutine.
type Table struct {
	svc  *Service
	game *domain.Game

	mu        sync.Mutex
	nextID    int
	listeners map[int]Listener
}

func NewTable(svc *Service, game *domain.Game) *Table {
	return &Table{svc: svc, game: game, listeners: make(map[int]Listener)}
}

// OpenTable loads a stored game into a new table.
func OpenTable(ctx context.Context, svc *Service, id string) (*Table, error) {
	game, err := svc.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewTable(svc, game), nil
}

// State returns a deep copy of the current game.
func (t *Table) State() *domain.Game {
	return t.game.Clone()
}

// Subscribe registers a listener and returns the function that removes it.
func (t *Table) Subscribe(fn Listener) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = fn
	t.mu.Unlock()

	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

// AddRound records a new round and notifies listeners.
func (t *Table) AddRound(ctx context.Context, inputs []domain.ScoreInput) (Result, error) {
	res, err := t.svc.AddRound(ctx, t.game, inputs)
	if err != nil {
		return res, err
	}
	t.notify(res.Events)
	return res, nil
}

// UpdateRound edits a recorded round and notifies listeners.
func (t *Table) UpdateRound(ctx context.Context, roundID string, inputs []domain.ScoreInput) (Result, error) {
	res, err := t.svc.UpdateRound(ctx, t.game, roundID, inputs)
	if err != nil {
		return res, err
	}
	t.notify(res.Events)
	return res, nil
}

func (t *Table) notify(events []Event) {
	t.mu.Lock()
	listeners := make([]Listener, 0, len(t.listeners))
	for id := 0; id < t.nextID; id++ {
		if fn, ok := t.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	t.mu.Unlock()

	for _, fn := range listeners {
		fn(t.game.Clone(), events)
	}
}
