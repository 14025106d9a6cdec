package activities

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts an activity row.
func (r *PGRepo) Create(ctx context.Context, a Activity) error {
	const query = `
INSERT INTO activities (id, user_id, type, title, document_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6)`

	var documentID sql.NullString
	if a.DocumentID != "" {
		documentID = sql.NullString{String: a.DocumentID, Valid: true}
	}
	_, err := r.DB.ExecContext(ctx, query, a.ID, a.UserID, string(a.Type), a.Title, documentID, a.CreatedAt)
	return err
}

// ListByUser returns the newest activities for a user.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Activity, error) {
	const query = `
SELECT id, user_id, type, title, document_id, created_at
FROM activities
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Activity{}
	for rows.Next() {
		var a Activity
		var typ string
		var documentID sql.NullString
		if err := rows.Scan(&a.ID, &a.UserID, &typ, &a.Title, &documentID, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Type = Type(typ)
		a.DocumentID = documentID.String
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ Repo = (*PGRepo)(nil)
