// Package storage provides SQLite-based persistence for recorded play sessions.
// A session journal stores the seed, the configuration and every key read per
// frame, which is enough to replay a session exactly.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("storage: session not found")

// ErrAmbiguous is returned when an ID prefix matches more than one session.
var ErrAmbiguous = errors.New("storage: session id prefix is ambiguous")

const timeLayout = "2006-01-02 15:04:05.000000"

// Store manages the SQLite database connection for the session journal.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// SessionInfo describes a session when it is created.
type SessionInfo struct {
	Seed       int64
	ConfigYAML string
	Frontend   string // "tea", "tcell" or "ssh"
	Player     string
}

// Session is a recorded play session.
type Session struct {
	ID         string
	Seed       int64
	ConfigYAML string
	Frontend   string
	Player     string
	StartedAt  time.Time
	EndedAt    time.Time // Zero while the session is still open
	Frames     int64
	Rounds     int
}

// Finished reports whether the session was closed.
func (s Session) Finished() bool {
	return !s.EndedAt.IsZero()
}

// KeyEntry is one key read by the frame controller.
type KeyEntry struct {
	Frame int64
	Key   rune
}

// Round is the result of one finished round.
type Round struct {
	Number     int
	StartFrame int64
	EndFrame   int64
	Score      int64
	Speed      int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; SSH sessions share the store.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			config_yaml TEXT NOT NULL,
			frontend TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT '',
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			frames INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS session_keys (
			session_id TEXT NOT NULL,
			frame INTEGER NOT NULL,
			key_code INTEGER NOT NULL,
			PRIMARY KEY (session_id, frame)
		);

		CREATE TABLE IF NOT EXISTS session_rounds (
			session_id TEXT NOT NULL,
			round INTEGER NOT NULL,
			start_frame INTEGER NOT NULL,
			end_frame INTEGER NOT NULL,
			score INTEGER NOT NULL,
			speed INTEGER NOT NULL,
			PRIMARY KEY (session_id, round)
		);
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

// CreateSession opens a new session and returns its ID.
func (s *Store) CreateSession(info SessionInfo) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, seed, config_yaml, frontend, player, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, info.Seed, info.ConfigYAML, info.Frontend, info.Player, s.timestamp(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot create session: %w", err)
	}
	return id, nil
}

// AppendKey records the key read on a frame. A frame holds at most one key.
func (s *Store) AppendKey(sessionID string, frame int64, key rune) error {
	_, err := s.db.Exec(
		"INSERT INTO session_keys (session_id, frame, key_code) VALUES (?, ?, ?)",
		sessionID, frame, int64(key),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot append key: %w", err)
	}
	return nil
}

// RecordRound stores the result of a finished round.
func (s *Store) RecordRound(sessionID string, r Round) error {
	_, err := s.db.Exec(
		`INSERT INTO session_rounds (session_id, round, start_frame, end_frame, score, speed)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sessionID, r.Number, r.StartFrame, r.EndFrame, r.Score, r.Speed,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record round: %w", err)
	}
	return nil
}

// FinishSession closes a session after the given number of frames.
func (s *Store) FinishSession(sessionID string, frames int64) error {
	res, err := s.db.Exec(
		"UPDATE sessions SET ended_at = ?, frames = ? WHERE id = ?",
		s.timestamp(), frames, sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish session: %w", err)
	}
	return expectOne(res, sessionID)
}

const sessionColumns = `
	s.id, s.seed, s.config_yaml, s.frontend, s.player, s.started_at, s.ended_at, s.frames,
	(SELECT COUNT(*) FROM session_rounds r WHERE r.session_id = s.id)`

// Session retrieves a session by its full ID.
func (s *Store) Session(id string) (*Session, error) {
	row := s.db.QueryRow("SELECT "+sessionColumns+" FROM sessions s WHERE s.id = ?", id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return sess, nil
}

// Sessions retrieves the most recent sessions, newest first.
func (s *Store) Sessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+sessionColumns+" FROM sessions s ORDER BY s.started_at DESC, s.rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sessions = append(sessions, *sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// ResolveID expands a unique ID prefix into a full session ID.
func (s *Store) ResolveID(prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}

	rows, err := s.db.Query(
		"SELECT id FROM sessions WHERE substr(id, 1, ?) = ? LIMIT 2",
		len(prefix), prefix,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%w: %s", ErrNotFound, prefix)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguous, prefix)
	}
}

// Keys retrieves every recorded key of a session in frame order.
func (s *Store) Keys(sessionID string) ([]KeyEntry, error) {
	rows, err := s.db.Query(
		"SELECT frame, key_code FROM session_keys WHERE session_id = ? ORDER BY frame",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query keys: %w", err)
	}
	defer rows.Close()

	var keys []KeyEntry
	for rows.Next() {
		var k KeyEntry
		var code int64
		if err := rows.Scan(&k.Frame, &code); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		k.Key = rune(code)
		keys = append(keys, k)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return keys, nil
}

// Rounds retrieves every finished round of a session in order.
func (s *Store) Rounds(sessionID string) ([]Round, error) {
	rows, err := s.db.Query(
		`SELECT round, start_frame, end_frame, score, speed
		 FROM session_rounds
		 WHERE session_id = ?
		 ORDER BY round`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var rounds []Round
	for rows.Next() {
		var r Round
		if err := rows.Scan(&r.Number, &r.StartFrame, &r.EndFrame, &r.Score, &r.Speed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		rounds = append(rounds, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return rounds, nil
}

// DeleteSession removes a session with its keys and rounds.
func (s *Store) DeleteSession(sessionID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM session_keys WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("storage: cannot delete keys: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM session_rounds WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("storage: cannot delete rounds: %w", err)
	}
	res, err := tx.Exec("DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("storage: cannot delete session: %w", err)
	}
	if err := expectOne(res, sessionID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit: %w", err)
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(timeLayout)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*Session, error) {
	var sess Session
	var startedAt, endedAt any
	if err := row.Scan(
		&sess.ID,
		&sess.Seed,
		&sess.ConfigYAML,
		&sess.Frontend,
		&sess.Player,
		&startedAt,
		&endedAt,
		&sess.Frames,
		&sess.Rounds,
	); err != nil {
		return nil, err
	}
	sess.StartedAt = parseTime(startedAt)
	sess.EndedAt = parseTime(endedAt)
	return &sess, nil
}

// parseTime handles the driver returning DATETIME columns as either
// time.Time or text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v.UTC()
	case string:
		for _, layout := range []string{timeLayout, "2006-01-02 15:04:05", time.RFC3339Nano} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}

func expectOne(res sql.Result, sessionID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot count affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	return nil
}
