// Package store persists run/episode metadata (Postgres) and publishes
// live tick state (Redis), kept outside internal/game so the core engine
// has no database dependency of its own.
package store

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres manages the episode ledger: one row per simulation run plus a
// row per completed episode within it.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres opens a connection pool. An empty connString yields a
// disconnected Postgres whose methods are no-ops, so a server can run
// without a database configured.
func NewPostgres(connString string) (*Postgres, error) {
	if connString == "" {
		return &Postgres{}, nil
	}
	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		return nil, err
	}
	log.Println("store: connected to PostgreSQL")
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p != nil && p.pool != nil {
		p.pool.Close()
	}
}

// IsConnected reports whether a real database is behind this handle.
func (p *Postgres) IsConnected() bool { return p != nil && p.pool != nil }

// RunRecord is one row of the runs table: a simulation configuration. The
// row's creation time is set by the database and is not carried here.
type RunRecord struct {
	ID        uuid.UUID
	Seed      int64
	NumTeams  int
	MapWidth  int
	MapHeight int
}

// CreateRun inserts a new run row, returning its id.
func (p *Postgres) CreateRun(ctx context.Context, r RunRecord) (uuid.UUID, error) {
	if !p.IsConnected() {
		return r.ID, nil
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	_, err := p.pool.Exec(ctx,
		`insert into runs (id, seed, num_teams, map_width, map_height, created_at)
		 values ($1, $2, $3, $4, $5, now())`,
		r.ID, r.Seed, r.NumTeams, r.MapWidth, r.MapHeight)
	return r.ID, err
}

// EpisodeRecord is one completed episode's summary statistics.
type EpisodeRecord struct {
	RunID       uuid.UUID
	EpisodeNum  int
	Ticks       int
	AgentsKilled int
	BuildingsBuilt int
}

// RecordEpisode inserts an episode summary row for a run.
func (p *Postgres) RecordEpisode(ctx context.Context, e EpisodeRecord) error {
	if !p.IsConnected() {
		return nil
	}
	_, err := p.pool.Exec(ctx,
		`insert into episodes (run_id, episode_num, ticks, agents_killed, buildings_built, ended_at)
		 values ($1, $2, $3, $4, $5, now())`,
		e.RunID, e.EpisodeNum, e.Ticks, e.AgentsKilled, e.BuildingsBuilt)
	return err
}
