package chat

import (
	"context"
	"database/sql"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) CreateSession(ctx context.Context, s Session) error {
	const query = `
INSERT INTO chat_sessions (id, user_id, created_at)
VALUES ($1, $2, $3)`
	_, err := r.DB.ExecContext(ctx, query, s.ID, s.UserID, s.CreatedAt)
	return err
}

func (r *PGRepo) GetSession(ctx context.Context, userID, sessionID string) (Session, error) {
	const query = `
SELECT id, user_id, created_at
FROM chat_sessions
WHERE id = $1 AND user_id = $2`
	return scanSession(r.DB.QueryRowContext(ctx, query, sessionID, userID))
}

func (r *PGRepo) LatestSession(ctx context.Context, userID string) (Session, error) {
	const query = `
SELECT id, user_id, created_at
FROM chat_sessions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT 1`
	return scanSession(r.DB.QueryRowContext(ctx, query, userID))
}

func scanSession(row *sql.Row) (Session, error) {
	var s Session
	if err := row.Scan(&s.ID, &s.UserID, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrNotFound
		}
		return Session{}, err
	}
	return s, nil
}

func (r *PGRepo) AddMessage(ctx context.Context, m Message) error {
	const query = `
INSERT INTO chat_messages (id, chat_session_id, content, is_user, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query, m.ID, m.SessionID, m.Content, m.IsUser, m.CreatedAt)
	return err
}

func (r *PGRepo) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	const query = `
SELECT id, chat_session_id, content, is_user, created_at
FROM chat_messages
WHERE chat_session_id = $1
ORDER BY created_at ASC, seq ASC`
	return r.query(ctx, query, sessionID)
}

func (r *PGRepo) RecentMessages(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	const query = `
SELECT id, chat_session_id, content, is_user, created_at
FROM (
    SELECT id, chat_session_id, content, is_user, created_at, seq
    FROM chat_messages
    WHERE chat_session_id = $1
    ORDER BY created_at DESC, seq DESC
    LIMIT $2
) recent
ORDER BY created_at ASC, seq ASC`
	return r.query(ctx, query, sessionID, limit)
}

func (r *PGRepo) query(ctx context.Context, query string, args ...any) ([]Message, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Message{}
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Content, &m.IsUser, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
