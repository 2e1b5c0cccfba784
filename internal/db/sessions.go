package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Action kinds stored with a session
const (
	ActionInstall  = "install"
	ActionRemove   = "remove"
	ActionRequire  = "require"
	ActionConflict = "conflict"
)

// Action is one request issued during a session
type Action struct {
	Seq     int
	Action  string
	Subject string
}

// Session is a committed request run
type Session struct {
	SessionID string
	Command   string
	Args      []string
	Feedback  []string
	CreatedAt time.Time
	Actions   []Action
}

// SaveSession stores a session and its actions
func (db *DB) SaveSession(ctx context.Context, s *Session) error {
	argsJSON, err := json.Marshal(s.Args)
	if err != nil {
		return fmt.Errorf("marshal args: %w", err)
	}
	feedbackJSON, err := json.Marshal(s.Feedback)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	tx, err := db.write.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO sessions (session_id, command, args, feedback, created_at) VALUES (?, ?, ?, ?, ?)",
		s.SessionID, s.Command, string(argsJSON), string(feedbackJSON), s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	for i, a := range s.Actions {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO session_actions (session_id, seq, action, subject) VALUES (?, ?, ?, ?)",
			s.SessionID, i, a.Action, a.Subject)
		if err != nil {
			return fmt.Errorf("insert session action: %w", err)
		}
		s.Actions[i].Seq = i
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetSession retrieves a session with its actions
func (db *DB) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	var (
		s            Session
		argsJSON     string
		feedbackJSON string
	)
	err := db.read.QueryRowContext(ctx,
		"SELECT session_id, command, args, feedback, created_at FROM sessions WHERE session_id = ?",
		sessionID).Scan(&s.SessionID, &s.Command, &argsJSON, &feedbackJSON, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query session: %w", err)
	}

	if err := json.Unmarshal([]byte(argsJSON), &s.Args); err != nil {
		return nil, fmt.Errorf("unmarshal args: %w", err)
	}
	if err := json.Unmarshal([]byte(feedbackJSON), &s.Feedback); err != nil {
		return nil, fmt.Errorf("unmarshal feedback: %w", err)
	}

	rows, err := db.read.QueryContext(ctx,
		"SELECT seq, action, subject FROM session_actions WHERE session_id = ? ORDER BY seq", sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session actions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var a Action
		if err := rows.Scan(&a.Seq, &a.Action, &a.Subject); err != nil {
			return nil, fmt.Errorf("scan session action: %w", err)
		}
		s.Actions = append(s.Actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return &s, nil
}

// ListSessions returns every session, newest first, without actions
func (db *DB) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := db.read.QueryContext(ctx,
		"SELECT session_id, command, args, feedback, created_at FROM sessions ORDER BY created_at DESC, session_id")
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			s            Session
			argsJSON     string
			feedbackJSON string
		)
		if err := rows.Scan(&s.SessionID, &s.Command, &argsJSON, &feedbackJSON, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if err := json.Unmarshal([]byte(argsJSON), &s.Args); err != nil {
			return nil, fmt.Errorf("unmarshal args: %w", err)
		}
		if err := json.Unmarshal([]byte(feedbackJSON), &s.Feedback); err != nil {
			return nil, fmt.Errorf("unmarshal feedback: %w", err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return sessions, nil
}

// DeleteSession removes a session and its actions
func (db *DB) DeleteSession(ctx context.Context, sessionID string) error {
	result, err := db.write.ExecContext(ctx, "DELETE FROM sessions WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return nil
}
