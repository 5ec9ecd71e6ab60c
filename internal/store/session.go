package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/socra/internal/session"
)

// ErrSessionNotFound reports that no row exists for the session id.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionExpired reports that the session's TTL elapsed. The expired
// row is removed as part of the failed load.
var ErrSessionExpired = errors.New("session expired")

// SessionRepo persists session aggregates as JSON payloads keyed by
// session id. Expiry is enforced on read, never by a background reaper.
type SessionRepo struct {
	db *sql.DB
}

// Sessions returns the session repository.
func (s *Store) Sessions() *SessionRepo {
	return &SessionRepo{db: s.db}
}

// Save upserts the session.
func (r *SessionRepo) Save(ctx context.Context, sess *session.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", sess.SessionID, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO sessions (session_id, student_id, last_active, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET
			student_id = excluded.student_id,
			last_active = excluded.last_active,
			payload = excluded.payload`,
		sess.SessionID, sess.StudentID, sess.LastActive, string(payload))
	if err != nil {
		return fmt.Errorf("save session %s: %w", sess.SessionID, err)
	}
	return nil
}

// Load fetches a session by id. Returns ErrSessionNotFound when no row
// exists and ErrSessionExpired when its TTL has elapsed; an expired row
// is deleted on the way out.
func (r *SessionRepo) Load(ctx context.Context, sessionID string) (*session.Session, error) {
	var payload string
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM sessions WHERE session_id = ?`, sessionID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	var sess session.Session
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}

	if sess.Expired(time.Now()) {
		if err := r.Delete(ctx, sessionID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s", ErrSessionExpired, sessionID)
	}
	return &sess, nil
}

// Delete removes a session. Deleting a missing session is a no-op.
func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	return nil
}
