package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// statsColumns lists the stats table columns in SecondStats field order.
var statsColumns = []string{
	"second", "tick", "creatures",
	"avg_speed", "avg_size", "avg_energy", "avg_hunger", "avg_thirst",
	"hunger_std", "hunger_p10", "thirst_std", "thirst_p10",
	"berries", "drinks", "meals", "failed_meals", "claims_refused",
}

// Store keeps the stats history of every run in a SQLite file. Only
// statistics are stored; simulation state is never persisted.
type Store struct {
	conn *sqlx.DB
}

// Run describes one stored run.
type Run struct {
	ID          string `db:"id"`
	Seed        int64  `db:"seed"`
	StartedUnix int64  `db:"started_unix"`
	Seconds     int    `db:"seconds"`
}

// StartedAt returns the run's start time in UTC.
func (r Run) StartedAt() time.Time {
	return time.Unix(r.StartedUnix, 0).UTC()
}

// OpenStore opens or creates the stats database at path.
func OpenStore(path string) (*Store, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open stats db: %w", err)
	}

	s := &Store{conn: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate stats db: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		started_unix INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS stats (
		run_id TEXT NOT NULL REFERENCES runs(id),
		second INTEGER NOT NULL,
		tick INTEGER NOT NULL,
		creatures INTEGER NOT NULL,
		avg_speed REAL NOT NULL,
		avg_size REAL NOT NULL,
		avg_energy REAL NOT NULL,
		avg_hunger REAL NOT NULL,
		avg_thirst REAL NOT NULL,
		hunger_std REAL NOT NULL,
		hunger_p10 REAL NOT NULL,
		thirst_std REAL NOT NULL,
		thirst_p10 REAL NOT NULL,
		berries INTEGER NOT NULL,
		drinks INTEGER NOT NULL,
		meals INTEGER NOT NULL,
		failed_meals INTEGER NOT NULL,
		claims_refused INTEGER NOT NULL,
		PRIMARY KEY (run_id, second)
	);
	`
	_, err := s.conn.Exec(schema)
	return err
}

// BeginRun registers a new run.
func (s *Store) BeginRun(id string, seed int64, startedAt time.Time) error {
	_, err := s.conn.Exec(
		"INSERT INTO runs (id, seed, started_unix) VALUES (?, ?, ?)",
		id, seed, startedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("begin run %s: %w", id, err)
	}
	return nil
}

type statsRow struct {
	RunID string `db:"run_id"`
	SecondStats
}

// SaveStats appends seconds to a run's history in one transaction.
func (s *Store) SaveStats(runID string, stats []SecondStats) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := s.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := fmt.Sprintf("INSERT INTO stats (run_id, %s) VALUES (:run_id, :%s)",
		strings.Join(statsColumns, ", "), strings.Join(statsColumns, ", :"))
	for _, st := range stats {
		if _, err := tx.NamedExec(query, statsRow{RunID: runID, SecondStats: st}); err != nil {
			return fmt.Errorf("save second %d: %w", st.Second, err)
		}
	}

	return tx.Commit()
}

// RunStats returns a run's history ordered by second.
func (s *Store) RunStats(runID string) ([]SecondStats, error) {
	var out []SecondStats
	query := fmt.Sprintf("SELECT %s FROM stats WHERE run_id = ? ORDER BY second",
		strings.Join(statsColumns, ", "))
	if err := s.conn.Select(&out, query, runID); err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	return out, nil
}

// Runs lists stored runs, newest first.
func (s *Store) Runs() ([]Run, error) {
	var runs []Run
	err := s.conn.Select(&runs, `
		SELECT r.id, r.seed, r.started_unix, COUNT(st.second) AS seconds
		FROM runs r LEFT JOIN stats st ON st.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_unix DESC, r.id`)
	return runs, err
}
