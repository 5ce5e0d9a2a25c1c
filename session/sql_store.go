package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SaiNageswarS/trials-agent/memory"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const createSessionsTable = `CREATE TABLE IF NOT EXISTS conversation_sessions (
	id TEXT PRIMARY KEY,
	state_json TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

const selectSession = `SELECT state_json FROM conversation_sessions WHERE id = $1`

const upsertSession = `INSERT INTO conversation_sessions (id, state_json, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (id) DO UPDATE SET state_json = excluded.state_json, updated_at = excluded.updated_at`

// SQLStore keeps each session as a JSON document in conversation_sessions.
type SQLStore struct {
	db     *sql.DB
	driver string
}

// OpenSQLStore opens dsn with the postgres or sqlite driver and creates the table if needed.
func OpenSQLStore(ctx context.Context, driver, dsn string) (*SQLStore, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s db: %w", driver, err)
	}

	store, err := NewSQLStore(ctx, db, driver)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewSQLStore(ctx context.Context, db *sql.DB, driver string) (*SQLStore, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to %s db: %w", driver, err)
	}

	if _, err := db.ExecContext(ctx, createSessionsTable); err != nil {
		return nil, fmt.Errorf("failed to create sessions table: %w", err)
	}

	return &SQLStore{db: db, driver: driver}, nil
}

func (s *SQLStore) Load(ctx context.Context, id string) (*memory.ConversationState, error) {
	var stateJSON string
	err := s.db.QueryRowContext(ctx, s.rebind(selectSession), id).Scan(&stateJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, memory.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var state memory.ConversationState
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", id, err)
	}
	return &state, nil
}

func (s *SQLStore) Save(ctx context.Context, state *memory.ConversationState) error {
	if state.ID == "" {
		return errors.New("session id is required")
	}

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", state.ID, err)
	}

	_, err = s.db.ExecContext(ctx, s.rebind(upsertSession), state.ID, string(stateJSON), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", state.ID, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites $N placeholders to ? for sqlite.
func (s *SQLStore) rebind(query string) string {
	if s.driver != DriverSQLite {
		return query
	}
	for i := strings.Count(query, "$"); i >= 1; i-- {
		query = strings.ReplaceAll(query, "$"+strconv.Itoa(i), "?")
	}
	return query
}
