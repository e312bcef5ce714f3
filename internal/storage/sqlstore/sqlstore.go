// Package sqlstore keeps games in a SQL database for the command line tool.
// SQLite is the default; Postgres is reached through the pgx driver.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/sukhmal/RummyScorer-sub000/internal/domain"
	"github.com/sukhmal/RummyScorer-sub000/internal/ports"
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "pgx"

	DefaultDSN = "./rummy.db"
)

const schema = `
create table if not exists rummy_games (
	id text not null primary key,
	name text,
	variant text not null,
	winner text,
	started_at bigint not null,
	data text not null
)`

// Store implements ports.GameRepository and ports.GameLister.
type Store struct {
	db     *sql.DB
	driver string
	m      sync.Mutex
}

// Open connects to the database and creates the games table if needed.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case "", DriverSQLite:
		driver = DriverSQLite
		if dsn == "" {
			dsn = DefaultDSN
		}
	case DriverPostgres:
		if dsn == "" {
			return nil, errors.New("postgres needs a dsn")
		}
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Save(ctx context.Context, game *domain.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("failed to marshal game: %w", err)
	}

	s.m.Lock()
	defer s.m.Unlock()
	_, err = s.db.ExecContext(ctx, s.rebind(`
		insert into rummy_games (id, name, variant, winner, started_at, data)
		values (?, ?, ?, ?, ?, ?)
		on conflict (id) do update set
			name = excluded.name,
			winner = excluded.winner,
			data = excluded.data`),
		game.ID, game.Name, string(game.Config.Variant), game.Winner, game.StartedAt.UnixNano(), string(data))
	if err != nil {
		return fmt.Errorf("failed to save game %s: %w", game.ID, err)
	}
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*domain.Game, error) {
	s.m.Lock()
	defer s.m.Unlock()
	var data string
	err := s.db.QueryRowContext(ctx, s.rebind("select data from rummy_games where id = ?"), id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ports.ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load game %s: %w", id, err)
	}
	return decode(id, data)
}

// List returns up to limit games, most recently started first. A limit of
// zero or less lists everything.
func (s *Store) List(ctx context.Context, limit int) ([]ports.GameSummary, error) {
	query := "select id, data from rummy_games order by started_at desc, id"
	args := []any{}
	if limit > 0 {
		query += " limit ?"
		args = append(args, limit)
	}

	s.m.Lock()
	defer s.m.Unlock()
	rows, err := s.db.QueryContext(ctx, s.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	defer rows.Close()

	var out []ports.GameSummary
	for rows.Next() {
		var id, data string
		if err := rows.Scan(&id, &data); err != nil {
			return nil, err
		}
		game, err := decode(id, data)
		if err != nil {
			return nil, err
		}
		out = append(out, ports.Summarize(game))
	}
	return out, rows.Err()
}

// rebind turns ? placeholders into $n for Postgres.
func (s *Store) rebind(query string) string {
	if s.driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func decode(id, data string) (*domain.Game, error) {
	var game domain.Game
	if err := json.Unmarshal([]byte(data), &game); err != nil {
		return nil, fmt.Errorf("failed to decode game %s: %w", id, err)
	}
	return &game, nil
}

var (
	_ ports.GameRepository = (*Store)(nil)
	_ ports.GameLister     = (*Store)(nil)
)
