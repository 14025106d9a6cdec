package chat

import "time"

// Session groups one user's conversation with the assistant.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// Message is one turn in a session. IsUser is false for assistant replies.
type Message struct {
	ID        string
	SessionID string
	Content   string
	IsUser    bool
	CreatedAt time.Time
}
