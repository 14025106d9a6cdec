package lawyers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const lawyerColumns = `id, name, specialization, location, rating::float8, experience_years, image_url, email, phone, available`

// Search returns one page of matching lawyers plus the total match count.
func (r *PGRepo) Search(ctx context.Context, q Query) ([]Lawyer, int, error) {
	where, args := buildWhere(q)

	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM lawyers`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	// SortBy is validated by Query.Normalize.
	query := fmt.Sprintf(`SELECT %s FROM lawyers%s ORDER BY %s %s, name ASC LIMIT $%d OFFSET $%d`,
		lawyerColumns, where, q.SortBy, direction, len(args)+1, len(args)+2)
	rows, err := r.DB.QueryContext(ctx, query, append(args, q.Limit, q.Offset())...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := []Lawyer{}
	for rows.Next() {
		var l Lawyer
		var specs []byte
		if err := rows.Scan(&l.ID, &l.Name, &specs, &l.Location, &l.Rating, &l.ExperienceYears, &l.ImageURL, &l.Email, &l.Phone, &l.Available); err != nil {
			return nil, 0, err
		}
		if len(specs) > 0 {
			if err := json.Unmarshal(specs, &l.Specialization); err != nil {
				return nil, 0, fmt.Errorf("decode specialization for %s: %w", l.ID, err)
			}
		}
		out = append(out, l)
	}
	return out, total, rows.Err()
}

func buildWhere(q Query) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Text != "" {
		p := next("%" + escapeLike(q.Text) + "%")
		conds = append(conds, "(name ILIKE "+p+" OR location ILIKE "+p+")")
	}
	if len(q.Specializations) > 0 {
		conds = append(conds, "specialization ?| "+next(textArray(q.Specializations))+"::text[]")
	}
	if q.Location != "" {
		conds = append(conds, "location ILIKE "+next("%"+escapeLike(q.Location)+"%"))
	}
	if q.MinRating > 0 {
		conds = append(conds, "rating >= "+next(q.MinRating))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// textArray renders a Postgres text[] literal so the argument stays a plain string.
func textArray(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		v = strings.ReplaceAll(v, `\`, `\\`)
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	return "{" + strings.Join(quoted, ",") + "}"
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Upsert inserts or refreshes directory entries by ID.
func (r *PGRepo) Upsert(ctx context.Context, lawyers []Lawyer) error {
	const query = `
INSERT INTO lawyers (id, name, specialization, location, rating, experience_years, image_url, email, phone, available)
VALUES ($1, $2, $3::jsonb, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    specialization = EXCLUDED.specialization,
    location = EXCLUDED.location,
    rating = EXCLUDED.rating,
    experience_years = EXCLUDED.experience_years,
    image_url = EXCLUDED.image_url,
    email = EXCLUDED.email,
    phone = EXCLUDED.phone,
    available = EXCLUDED.available`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, l := range lawyers {
		specs := l.Specialization
		if specs == nil {
			specs = []string{}
		}
		raw, err := json.Marshal(specs)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, l.ID, l.Name, string(raw), l.Location, l.Rating, l.ExperienceYears, l.ImageURL, l.Email, l.Phone, l.Available); err != nil {
			return fmt.Errorf("upsert lawyer %s: %w", l.ID, err)
		}
	}
	return tx.Commit()
}

var _ Repo = (*PGRepo)(nil)
