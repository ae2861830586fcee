// Package store persists named match snapshots ("scenarios") in SQLite so a
// designer can return to an interesting position.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/peterkuimelis/cardlab/internal/game"
)

// ErrNotFound is returned when no scenario has the requested name.
var ErrNotFound = errors.New("scenario not found")

const schema = `
CREATE TABLE IF NOT EXISTS scenarios (
	name       TEXT PRIMARY KEY,
	turn       INTEGER NOT NULL,
	phase      TEXT NOT NULL,
	decided    INTEGER NOT NULL DEFAULT 0,
	match_json BLOB NOT NULL,
	saved_at   INTEGER NOT NULL
);`

// Scenario describes a saved match without its payload.
type Scenario struct {
	Name    string    `json:"name"`
	Turn    int       `json:"turn"`
	Phase   string    `json:"phase"`
	Decided bool      `json:"decided"`
	SavedAt time.Time `json:"savedAt"`
}

// Store provides SQLite-backed scenario persistence.
type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens and migrates a scenario store at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

// Close releases the underlying SQLite connection.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save upserts m under name. Undo history is not persisted; a loaded
// scenario starts with an empty history.
func (s *Store) Save(ctx context.Context, name string, m *game.Match) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if m == nil {
		return fmt.Errorf("scenario %q: match is required", name)
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode scenario %q: %w", name, err)
	}

	_, err = s.sqlDB.ExecContext(ctx,
		`INSERT INTO scenarios (name, turn, phase, decided, match_json, saved_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
		    turn = excluded.turn,
		    phase = excluded.phase,
		    decided = excluded.decided,
		    match_json = excluded.match_json,
		    saved_at = excluded.saved_at`,
		name, m.Turn, m.Phase.String(), boolToInt(m.Victory.Decided()), payload, s.now().UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save scenario %q: %w", name, err)
	}
	return nil
}

// Load returns the match saved under name.
func (s *Store) Load(ctx context.Context, name string) (*game.Match, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	var payload []byte
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT match_json FROM scenarios WHERE name = ?`,
		strings.TrimSpace(name),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("load scenario %q: %w", name, err)
	}

	var m game.Match
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("decode scenario %q: %w", name, err)
	}
	return &m, nil
}

// List returns every saved scenario, most recent first.
func (s *Store) List(ctx context.Context) ([]Scenario, error) {
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT name, turn, phase, decided, saved_at FROM scenarios ORDER BY saved_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	defer rows.Close()

	var out []Scenario
	for rows.Next() {
		var sc Scenario
		var decided, savedAt int64
		if err := rows.Scan(&sc.Name, &sc.Turn, &sc.Phase, &decided, &savedAt); err != nil {
			return nil, fmt.Errorf("scan scenario: %w", err)
		}
		sc.Decided = decided != 0
		sc.SavedAt = time.UnixMilli(savedAt).UTC()
		out = append(out, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	return out, nil
}

// Delete removes the scenario saved under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	res, err := s.sqlDB.ExecContext(ctx, `DELETE FROM scenarios WHERE name = ?`, strings.TrimSpace(name))
	if err != nil {
		return fmt.Errorf("delete scenario %q: %w", name, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
