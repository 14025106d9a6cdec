package activities

import "context"

// Repo persists activities.
type Repo interface {
	Create(ctx context.Context, a Activity) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Activity, error)
}
