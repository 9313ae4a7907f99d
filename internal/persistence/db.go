// Package persistence provides SQLite-backed parameter storage that
// survives across sessions.
package persistence

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/san-kum/gravscroll/internal/gravity"
)

// DB wraps a SQLite connection holding saved parameters.
type DB struct {
	conn *sqlx.DB
	log  *slog.Logger
}

type paramRow struct {
	Name      string  `db:"name"`
	Value     float64 `db:"value"`
	UpdatedAt int64   `db:"updated_at"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn, log: slog.Default()}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// SetLogger replaces the logger used for skipped rows.
func (db *DB) SetLogger(l *slog.Logger) { db.log = l }

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS params (
		name TEXT PRIMARY KEY,
		value REAL NOT NULL,
		updated_at INTEGER NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// LoadParams returns defaults overlaid with every stored value. Rows naming
// parameters this build does not know are skipped.
func (db *DB) LoadParams(defaults gravity.Params) (gravity.Params, error) {
	var rows []paramRow
	if err := db.conn.Select(&rows, "SELECT name, value, updated_at FROM params"); err != nil {
		return defaults, fmt.Errorf("select params: %w", err)
	}

	p := defaults
	for _, row := range rows {
		patch, err := gravity.PatchFromMap(map[string]float64{row.Name: row.Value})
		if errors.Is(err, gravity.ErrUnknownParam) {
			db.log.Warn("skipping stored parameter", "name", row.Name)
			continue
		}
		if err != nil {
			return defaults, err
		}
		p.Update(patch)
	}
	return p, nil
}

// SaveParams writes every field of p, replacing earlier values.
func (db *DB) SaveParams(p gravity.Params) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	now := time.Now().Unix()
	for name, value := range p.GetParams() {
		_, err := tx.Exec(`
			INSERT INTO params (name, value, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			name, value, now)
		if err != nil {
			return fmt.Errorf("save %s: %w", name, err)
		}
	}
	return tx.Commit()
}

// ResetParams forgets every stored value.
func (db *DB) ResetParams() error {
	_, err := db.conn.Exec("DELETE FROM params")
	return err
}

// Stored lists the raw stored values with their last update time.
func (db *DB) Stored() (map[string]float64, time.Time, error) {
	var rows []paramRow
	if err := db.conn.Select(&rows, "SELECT name, value, updated_at FROM params ORDER BY name"); err != nil {
		return nil, time.Time{}, err
	}
	out := make(map[string]float64, len(rows))
	var latest int64
	for _, row := range rows {
		out[row.Name] = row.Value
		if row.UpdatedAt > latest {
			latest = row.UpdatedAt
		}
	}
	if latest == 0 {
		return out, time.Time{}, nil
	}
	return out, time.Unix(latest, 0), nil
}
