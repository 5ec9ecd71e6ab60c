package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/socra/internal/llm"
)

// ErrCallNotFound reports that no audit row exists for the id.
var ErrCallNotFound = errors.New("reasoning call not found")

// LLMCall is one persisted reasoning-call audit row.
type LLMCall struct {
	ID           int64
	CreatedAt    time.Time
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMAuditRepo persists reasoning-call records. Implements llm.AuditSink.
type LLMAuditRepo struct {
	db *sql.DB
}

// LLMAudit returns the reasoning-call audit repository.
func (s *Store) LLMAudit() *LLMAuditRepo {
	return &LLMAuditRepo{db: s.db}
}

// RecordLLMCall appends one audit row.
func (r *LLMAuditRepo) RecordLLMCall(ctx context.Context, rec llm.CallRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO llm_calls (
			created_at, provider, model, purpose,
			input_tokens, output_tokens, latency_ms,
			success, error_message, request_body, response_body
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now(), rec.Provider, rec.Model, string(rec.Purpose),
		rec.InputTokens, rec.OutputTokens, rec.LatencyMs,
		rec.Success, rec.ErrorMessage, rec.RequestBody, rec.ResponseBody)
	if err != nil {
		return fmt.Errorf("record reasoning call: %w", err)
	}
	return nil
}

// List returns the most recent calls, newest first.
func (r *LLMAuditRepo) List(ctx context.Context, limit int) ([]LLMCall, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, created_at, provider, model, purpose,
			input_tokens, output_tokens, latency_ms,
			success, error_message, request_body, response_body
		FROM llm_calls ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reasoning calls: %w", err)
	}
	defer rows.Close()

	var calls []LLMCall
	for rows.Next() {
		var c LLMCall
		if err := rows.Scan(
			&c.ID, &c.CreatedAt, &c.Provider, &c.Model, &c.Purpose,
			&c.InputTokens, &c.OutputTokens, &c.LatencyMs,
			&c.Success, &c.ErrorMessage, &c.RequestBody, &c.ResponseBody,
		); err != nil {
			return nil, fmt.Errorf("scan reasoning call: %w", err)
		}
		calls = append(calls, c)
	}
	return calls, rows.Err()
}

// Get fetches one call by id.
func (r *LLMAuditRepo) Get(ctx context.Context, id int64) (*LLMCall, error) {
	var c LLMCall
	err := r.db.QueryRowContext(ctx, `
		SELECT id, created_at, provider, model, purpose,
			input_tokens, output_tokens, latency_ms,
			success, error_message, request_body, response_body
		FROM llm_calls WHERE id = ?`, id).Scan(
		&c.ID, &c.CreatedAt, &c.Provider, &c.Model, &c.Purpose,
		&c.InputTokens, &c.OutputTokens, &c.LatencyMs,
		&c.Success, &c.ErrorMessage, &c.RequestBody, &c.ResponseBody)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrCallNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get reasoning call %d: %w", id, err)
	}
	return &c, nil
}
