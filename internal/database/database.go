package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sqlx.DB
}

// Session is one run of the chat loop.
type Session struct {
	ID         int64      `db:"id"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
	Exchanges  int        `db:"exchanges"`
}

// Exchange is a single user/companion turn.
type Exchange struct {
	ID        int64     `db:"id"`
	SessionID int64     `db:"session_id"`
	CreatedAt time.Time `db:"created_at"`
	UserText  string    `db:"user_text"`
	Assistant string    `db:"assistant_text"`
	Category  string    `db:"category"`
}

// exchangeRetention caps how many turns are kept per session.
const exchangeRetention = 50

// NewDatabase opens (or creates) the transcript database.
func NewDatabase(databaseURL string) (*DB, error) {
	if databaseURL == "" {
		databaseURL = "maitre.db"
	}

	db, err := sqlx.Connect("sqlite3", databaseURL+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	dbWrapper := &DB{DB: db}

	if err := dbWrapper.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return dbWrapper, nil
}

func (db *DB) createTables() error {
	sessionsTable := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		finished_at DATETIME
	);`

	exchangesTable := `
	CREATE TABLE IF NOT EXISTS exchanges (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		user_text TEXT NOT NULL,
		assistant_text TEXT NOT NULL,
		category TEXT DEFAULT '',
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_exchanges_session_id ON exchanges(session_id);`,
		`CREATE INDEX IF NOT EXISTS idx_exchanges_created_at ON exchanges(created_at);`,
	}

	for _, stmt := range append([]string{sessionsTable, exchangesTable}, indexes...) {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}

	return nil
}

// StartSession records a new chat session and returns its id.
func (db *DB) StartSession() (int64, error) {
	result, err := db.Exec(`INSERT INTO sessions (started_at) VALUES (?)`, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to start session: %w", err)
	}
	return result.LastInsertId()
}

// FinishSession marks a session as ended.
func (db *DB) FinishSession(sessionID int64) error {
	_, err := db.Exec(`UPDATE sessions SET finished_at = ? WHERE id = ?`, time.Now(), sessionID)
	if err != nil {
		return fmt.Errorf("failed to finish session: %w", err)
	}
	return nil
}

// RecordExchange stores one turn and prunes the session to the
// retention cap.
func (db *DB) RecordExchange(sessionID int64, userText, assistantText, category string) error {
	_, err := db.Exec(
		`INSERT INTO exchanges (session_id, created_at, user_text, assistant_text, category) VALUES (?, ?, ?, ?, ?)`,
		sessionID, time.Now(), userText, assistantText, category)
	if err != nil {
		return fmt.Errorf("failed to record exchange: %w", err)
	}

	// Keep only the most recent turns per session
	_, err = db.Exec(`
		DELETE FROM exchanges
		WHERE session_id = ?
		  AND id NOT IN (
			SELECT id FROM exchanges WHERE session_id = ? ORDER BY id DESC LIMIT ?
		  )`, sessionID, sessionID, exchangeRetention)
	if err != nil {
		return fmt.Errorf("failed to prune exchanges: %w", err)
	}
	return nil
}

// RecentExchanges returns up to limit turns for a session, oldest first.
func (db *DB) RecentExchanges(sessionID int64, limit int) ([]Exchange, error) {
	if limit <= 0 {
		limit = exchangeRetention
	}

	var exchanges []Exchange
	err := db.Select(&exchanges, `
		SELECT * FROM (
			SELECT id, session_id, created_at, user_text, assistant_text, category
			FROM exchanges WHERE session_id = ? ORDER BY id DESC LIMIT ?
		) ORDER BY id ASC`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load exchanges: %w", err)
	}
	return exchanges, nil
}

// Sessions lists recent sessions with their turn counts, newest first.
func (db *DB) Sessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	var sessions []Session
	err := db.Select(&sessions, `
		SELECT s.id, s.started_at, s.finished_at, COUNT(e.id) AS exchanges
		FROM sessions s
		LEFT JOIN exchanges e ON e.session_id = s.id
		GROUP BY s.id
		ORDER BY s.id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
