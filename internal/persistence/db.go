// Package persistence provides SQLite-based recording of simulation runs.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/planisuss/internal/engine"
	"github.com/talgya/planisuss/internal/telemetry"
)

// DB wraps a SQLite connection holding one simulation run: a row per
// completed day plus the event log and run metadata.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS days (
		day INTEGER PRIMARY KEY,
		erbast_population INTEGER NOT NULL,
		carviz_population INTEGER NOT NULL,
		erbast_energy INTEGER NOT NULL,
		carviz_energy INTEGER NOT NULL,
		erbast_mean_lifetime REAL NOT NULL,
		erbast_mean_age REAL NOT NULL,
		erbast_mean_attitude REAL NOT NULL,
		carviz_mean_lifetime REAL NOT NULL,
		carviz_mean_age REAL NOT NULL,
		carviz_mean_attitude REAL NOT NULL,
		vegetob_mean REAL NOT NULL,
		vegetob_histogram_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		day INTEGER NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// RecordDay writes one completed day's aggregates and its events in a
// single transaction. Re-recording a day replaces the earlier row.
func (db *DB) RecordDay(stats telemetry.DayStats, events []engine.Event) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	histJSON, _ := json.Marshal(stats.VegetobHistogram)

	_, err = tx.Exec(`INSERT OR REPLACE INTO days
		(day, erbast_population, carviz_population, erbast_energy, carviz_energy,
		 erbast_mean_lifetime, erbast_mean_age, erbast_mean_attitude,
		 carviz_mean_lifetime, carviz_mean_age, carviz_mean_attitude,
		 vegetob_mean, vegetob_histogram_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		stats.Day, stats.ErbastPopulation, stats.CarvizPopulation,
		stats.ErbastEnergy, stats.CarvizEnergy,
		stats.ErbastMeanLifetime, stats.ErbastMeanAge, stats.ErbastMeanAttitude,
		stats.CarvizMeanLifetime, stats.CarvizMeanAge, stats.CarvizMeanAttitude,
		stats.VegetobMean, string(histJSON),
	)
	if err != nil {
		return fmt.Errorf("insert day %d: %w", stats.Day, err)
	}

	for _, e := range events {
		_, err := tx.Exec(
			"INSERT INTO events (day, category, description) VALUES (?, ?, ?)",
			e.Day, e.Category, e.Description,
		)
		if err != nil {
			return fmt.Errorf("insert event day %d: %w", e.Day, err)
		}
	}

	return tx.Commit()
}

// Days returns every recorded day in order.
func (db *DB) Days() ([]telemetry.DayStats, error) {
	rows, err := db.conn.Queryx(`SELECT
		day, erbast_population, carviz_population, erbast_energy, carviz_energy,
		erbast_mean_lifetime, erbast_mean_age, erbast_mean_attitude,
		carviz_mean_lifetime, carviz_mean_age, carviz_mean_attitude,
		vegetob_mean, vegetob_histogram_json
		FROM days ORDER BY day`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []telemetry.DayStats
	for rows.Next() {
		var d telemetry.DayStats
		var histJSON string
		err := rows.Scan(&d.Day, &d.ErbastPopulation, &d.CarvizPopulation,
			&d.ErbastEnergy, &d.CarvizEnergy,
			&d.ErbastMeanLifetime, &d.ErbastMeanAge, &d.ErbastMeanAttitude,
			&d.CarvizMeanLifetime, &d.CarvizMeanAge, &d.CarvizMeanAttitude,
			&d.VegetobMean, &histJSON)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(histJSON), &d.VegetobHistogram); err != nil {
			return nil, fmt.Errorf("day %d histogram: %w", d.Day, err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SaveMeta stores one run metadata key, replacing any earlier value.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a run metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE key = ?", key)
	return value, err
}

// RecentEvents returns the most recent limit events, newest first.
func (db *DB) RecentEvents(limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := db.conn.Select(&events,
		"SELECT day, category, description FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
