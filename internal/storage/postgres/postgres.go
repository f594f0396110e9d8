package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"
)

// RunRow represents one solve run stored in Postgres.
type RunRow struct {
	RunID     int64           `json:"run_id"`
	Timestamp time.Time       `json:"ts"`
	Scenario  string          `json:"scenario"`
	Budget    int             `json:"budget"`
	OK        bool            `json:"ok"`
	Cost      *int            `json:"cost,omitempty"`
	ErrorCode *string         `json:"error,omitempty"`
	Plan      json.RawMessage `json:"plan,omitempty"`
	Goal      json.RawMessage `json:"goal,omitempty"`
	EngineID  string          `json:"engine_id"`
}

// Client manages the Postgres connection for run and event storage.
type Client struct {
	db       *sql.DB
	engineID string
}

// New creates a new Postgres client using environment variables.
func New(engineID string) (*Client, error) {
	host := getEnv("PGHOST", "127.0.0.1")
	port := getEnv("PGPORT", "5432")
	user := getEnv("PGUSER", "planner")
	dbname := getEnv("PGDATABASE", "planner")
	password := os.Getenv("PGPASSWORD")

	var connStr string
	if password != "" {
		connStr = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host, port, user, password, dbname)
	} else {
		connStr = fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=disable",
			host, port, user, dbname)
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	client := &Client{
		db:       db,
		engineID: engineID,
	}

	if err := client.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return client, nil
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func (c *Client) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			event_id  BIGSERIAL PRIMARY KEY,
			ts        TIMESTAMPTZ NOT NULL,
			level     TEXT NOT NULL,
			event     TEXT NOT NULL,
			msg       TEXT,
			fields    JSONB,
			engine_id TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts DESC);

		CREATE TABLE IF NOT EXISTS runs (
			run_id     BIGSERIAL PRIMARY KEY,
			ts         TIMESTAMPTZ NOT NULL,
			scenario   TEXT NOT NULL,
			budget     INTEGER NOT NULL,
			ok         BOOLEAN NOT NULL,
			cost       INTEGER,
			error_code TEXT,
			plan       JSONB,
			goal       JSONB,
			engine_id  TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(ts DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
	`
	_, err := c.db.Exec(query)
	return err
}

// AppendEvent inserts a structured log event into the database.
func (c *Client) AppendEvent(ts time.Time, level, event, msg string, fields map[string]interface{}) error {
	var fieldsJSON []byte
	var err error
	if fields != nil {
		fieldsJSON, err = json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("failed to marshal fields: %w", err)
		}
	}

	var msgPtr *string
	if msg != "" {
		msgPtr = &msg
	}

	query := `
		INSERT INTO events (ts, level, event, msg, fields, engine_id)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = c.db.Exec(query, ts, level, event, msgPtr, fieldsJSON, c.engineID)
	return err
}

// InsertRun stores the outcome of one solve run.
func (c *Client) InsertRun(ts time.Time, scenario string, budget int, ok bool, cost *int, errorCode *string, plan, goal json.RawMessage) error {
	query := `
		INSERT INTO runs (ts, scenario, budget, ok, cost, error_code, plan, goal, engine_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := c.db.Exec(query, ts, scenario, budget, ok, cost, errorCode, []byte(plan), []byte(goal), c.engineID)
	return err
}

// RecentRuns returns the last N runs in descending order by timestamp.
func (c *Client) RecentRuns(limit int) ([]RunRow, error) {
	if limit <= 0 {
		limit = 200
	}
	if limit > 10000 {
		limit = 10000
	}

	query := `
		SELECT run_id, ts, scenario, budget, ok, cost, error_code, plan, goal, engine_id
		FROM runs
		WHERE engine_id = $1
		ORDER BY ts DESC
		LIMIT $2
	`
	rows, err := c.db.Query(query, c.engineID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []RunRow
	for rows.Next() {
		var r RunRow
		var cost sql.NullInt64
		var errorCode sql.NullString
		var plan, goal []byte

		if err := rows.Scan(&r.RunID, &r.Timestamp, &r.Scenario, &r.Budget, &r.OK, &cost, &errorCode, &plan, &goal, &r.EngineID); err != nil {
			return nil, err
		}

		if cost.Valid {
			v := int(cost.Int64)
			r.Cost = &v
		}
		if errorCode.Valid {
			r.ErrorCode = &errorCode.String
		}
		r.Plan = json.RawMessage(plan)
		r.Goal = json.RawMessage(goal)

		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Close closes the database connection.
func (c *Client) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
