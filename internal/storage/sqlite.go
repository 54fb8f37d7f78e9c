// Package storage persists player profiles and level history in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/voidrun/internal/profile"
)

// DefaultProfile is the profile name used by local play.
const DefaultProfile = "local"

const timeLayout = "2006-01-02 15:04:05"

// Store manages the SQLite connection.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished level.
type RunRecord struct {
	ID        string // ULID
	Profile   string
	Stage     int
	Level     int
	Won       bool
	Weapon    string
	Kills     int
	Elapsed   float64 // Seconds survived
	XPLevel   int
	Coins     int // Credited after loss retention
	Gems      int
	CreatedAt time.Time
}

// RunStats aggregates the history of one profile.
type RunStats struct {
	Profile    string
	Runs       int
	Wins       int
	Kills      int
	Coins      int64
	BestStage  int
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// SQLite has a single writer; SSH sessions share this handle.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS profiles (
			name TEXT PRIMARY KEY,
			coins INTEGER NOT NULL DEFAULT 0,
			gems INTEGER NOT NULL DEFAULT 0,
			stage INTEGER NOT NULL DEFAULT 1,
			level_in_stage INTEGER NOT NULL DEFAULT 1,
			equipped_weapon TEXT NOT NULL,
			weapons BLOB NOT NULL,
			upgrades BLOB NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			profile TEXT NOT NULL,
			stage INTEGER NOT NULL,
			level INTEGER NOT NULL,
			won INTEGER NOT NULL,
			weapon TEXT NOT NULL,
			kills INTEGER NOT NULL DEFAULT 0,
			elapsed REAL NOT NULL DEFAULT 0,
			xp_level INTEGER NOT NULL DEFAULT 1,
			coins INTEGER NOT NULL DEFAULT 0,
			gems INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_profile ON runs(profile, id DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
}

// LoadProfile returns the named profile, or a fresh one if it was never saved.
func (s *Store) LoadProfile(name string) (profile.Profile, error) {
	return loadProfile(s.db, name)
}

func loadProfile(q queryer, name string) (profile.Profile, error) {
	var (
		p                 profile.Profile
		weapons, upgrades []byte
	)
	err := q.QueryRow(
		`SELECT coins, gems, stage, level_in_stage, equipped_weapon, weapons, upgrades
		 FROM profiles WHERE name = ?`,
		name,
	).Scan(&p.Coins, &p.Gems, &p.Stage, &p.LevelInStage, &p.EquippedWeapon, &weapons, &upgrades)
	if errors.Is(err, sql.ErrNoRows) {
		return profile.New(), nil
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("storage: cannot load profile %q: %w", name, err)
	}

	if err := msgpack.Unmarshal(weapons, &p.UnlockedWeapons); err != nil {
		return profile.Profile{}, fmt.Errorf("storage: cannot decode weapons of %q: %w", name, err)
	}
	if err := msgpack.Unmarshal(upgrades, &p.Upgrades); err != nil {
		return profile.Profile{}, fmt.Errorf("storage: cannot decode upgrades of %q: %w", name, err)
	}
	p.Normalize()
	return p, nil
}

// SaveProfile inserts or replaces the named profile.
func (s *Store) SaveProfile(name string, p profile.Profile) error {
	return saveProfile(s.db, name, p)
}

func saveProfile(q queryer, name string, p profile.Profile) error {
	weapons, err := msgpack.Marshal(p.UnlockedWeapons)
	if err != nil {
		return fmt.Errorf("storage: cannot encode weapons: %w", err)
	}
	upgrades, err := msgpack.Marshal(p.Upgrades)
	if err != nil {
		return fmt.Errorf("storage: cannot encode upgrades: %w", err)
	}

	_, err = q.Exec(
		`INSERT INTO profiles (name, coins, gems, stage, level_in_stage, equipped_weapon, weapons, upgrades, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET
			coins = excluded.coins,
			gems = excluded.gems,
			stage = excluded.stage,
			level_in_stage = excluded.level_in_stage,
			equipped_weapon = excluded.equipped_weapon,
			weapons = excluded.weapons,
			upgrades = excluded.upgrades,
			updated_at = CURRENT_TIMESTAMP`,
		name, p.Coins, p.Gems, p.Stage, p.LevelInStage, p.EquippedWeapon, weapons, upgrades,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save profile %q: %w", name, err)
	}
	return nil
}

// ApplyDelta merges a level delta into the stored profile in one transaction
// and returns the updated profile. Concurrent sessions of the same player
// each add their own earnings.
func (s *Store) ApplyDelta(name string, d profile.LevelDelta) (profile.Profile, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return profile.Profile{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	p, err := loadProfile(tx, name)
	if err != nil {
		return profile.Profile{}, err
	}
	p.Apply(d)
	if err := saveProfile(tx, name, p); err != nil {
		return profile.Profile{}, err
	}
	if err := tx.Commit(); err != nil {
		return profile.Profile{}, fmt.Errorf("storage: cannot commit delta: %w", err)
	}
	return p, nil
}

// DeleteProfile removes the profile and its history.
func (s *Store) DeleteProfile(name string) error {
	if _, err := s.db.Exec("DELETE FROM runs WHERE profile = ?", name); err != nil {
		return fmt.Errorf("storage: cannot clear runs of %q: %w", name, err)
	}
	if _, err := s.db.Exec("DELETE FROM profiles WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot delete profile %q: %w", name, err)
	}
	return nil
}

// RecordRun stores a finished level. A missing id gets a fresh ULID, which is
// also returned.
func (s *Store) RecordRun(r RunRecord) (string, error) {
	if r.ID == "" {
		r.ID = ulid.Make().String()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (id, profile, stage, level, won, weapon, kills, elapsed, xp_level, coins, gems)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Profile, r.Stage, r.Level, boolInt(r.Won), r.Weapon, r.Kills, r.Elapsed, r.XPLevel, r.Coins, r.Gems,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot record run: %w", err)
	}
	return r.ID, nil
}

// RecentRuns returns the newest runs of a profile, or of every profile when
// name is empty. ULIDs sort by creation time.
func (s *Store) RecentRuns(name string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, profile, stage, level, won, weapon, kills, elapsed, xp_level, coins, gems, created_at
		 FROM runs
		 WHERE ? = '' OR profile = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		name, name, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var (
			r         RunRecord
			createdAt any
		)
		if err := rows.Scan(&r.ID, &r.Profile, &r.Stage, &r.Level, &r.Won, &r.Weapon,
			&r.Kills, &r.Elapsed, &r.XPLevel, &r.Coins, &r.Gems, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Stats aggregates the run history of a profile.
func (s *Store) Stats(name string) (*RunStats, error) {
	stats := &RunStats{Profile: name}
	var last any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(SUM(kills), 0), COALESCE(SUM(coins), 0),
		        COALESCE(MAX(stage), 0), MAX(created_at)
		 FROM runs WHERE profile = ?`,
		name,
	).Scan(&stats.Runs, &stats.Wins, &stats.Kills, &stats.Coins, &stats.BestStage, &last)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats of %q: %w", name, err)
	}
	stats.LastPlayed = parseTime(last)
	return stats, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(timeLayout, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
