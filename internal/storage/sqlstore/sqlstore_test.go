package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "rummy.db"))
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newGame(t *testing.T, id string, started time.Time) *domain.Game {
	t.Helper()
	g, err := domain.NewGame(id, "table "+id, domain.GameConfig{Variant: domain.VariantDeals}, []domain.Player{{ID: "p1", Name: "Asha"}, {ID: "p2", Name: "Ravi"}}, started)
	if err != nil {
		t.Fatalf("NewGame error: %v", err)
	}
	return g
}

func TestSaveLoadAndOverwrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	start := time.Date(2026, 2, 14, 21, 0, 0, 0, time.UTC)

	game := newGame(t, "g1", start)
	if err := s.Save(ctx, game); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := game.AddRound(fmt.Sprintf("r%d", i+1), []domain.ScoreInput{{PlayerID: "p1", IsDeclared: true}, {PlayerID: "p2", Points: 20}}, start); err != nil {
			t.Fatalf("AddRound error: %v", err)
		}
	}
	if err := s.Save(ctx, game); err != nil {
		t.Fatalf("second Save error: %v", err)
	}

	loaded, err := s.Load(ctx, "g1")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Winner != "p1" || len(loaded.Rounds) != 2 || loaded.Players[1].Score != 40 {
		t.Fatalf("loaded game = %+v", loaded)
	}
	if _, err := s.Load(ctx, "missing"); !errors.Is(err, ports.ErrGameNotFound) {
		t.Fatalf("error = %v, want ErrGameNotFound", err)
	}
}

func TestListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"b", "c", "a"} {
		if err := s.Save(ctx, newGame(t, id, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[1].ID != "c" || all[2].ID != "b" {
		t.Fatalf("order = %+v", all)
	}
	if all[0].Name != "table a" || all[0].Status != domain.StatusEmpty || all[0].Variant != domain.VariantDeals {
		t.Fatalf("summary = %+v", all[0])
	}

	two, err := s.List(ctx, 2)
	if err != nil || len(two) != 2 {
		t.Fatalf("List(2) = %d, %v", len(two), err)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), "oracle", "x"); err == nil {
		t.Fatal("expected error for an unknown driver")
	}
	if _, err := Open(context.Background(), DriverPostgres, ""); err == nil {
		t.Fatal("expected error for postgres without a dsn")
	}
}

func TestRebind(t *testing.T) {
	pg := &Store{driver: DriverPostgres}
	if got := pg.rebind("select ? where a = ? limit ?"); got != "select $1 where a = $2 limit $3" {
		t.Fatalf("rebind = %q", got)
	}
	lite := &Store{driver: DriverSQLite}
	if got := lite.rebind("a = ?"); got != "a = ?" {
		t.Fatalf("rebind = %q", got)
	}
}
