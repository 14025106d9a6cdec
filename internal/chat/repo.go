package chat

import "context"

// Repo persists sessions and their messages.
type Repo interface {
	CreateSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, userID, sessionID string) (Session, error)
	// LatestSession returns the user's newest session or ErrNotFound.
	LatestSession(ctx context.Context, userID string) (Session, error)
	AddMessage(ctx context.Context, m Message) error
	// Messages returns the whole session oldest first.
	Messages(ctx context.Context, sessionID string) ([]Message, error)
	// RecentMessages returns at most limit of the newest messages, oldest first.
	RecentMessages(ctx context.Context, sessionID string, limit int) ([]Message, error)
}
