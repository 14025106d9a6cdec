package chat

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu       sync.RWMutex
	sessions map[string]Session
	order    map[string][]string
	messages map[string][]Message
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		sessions: make(map[string]Session),
		order:    make(map[string][]string),
		messages: make(map[string][]Message),
	}
}

func (r *MemoryRepo) CreateSession(ctx context.Context, s Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[s.ID] = s
	r.order[s.UserID] = append(r.order[s.UserID], s.ID)
	return nil
}

func (r *MemoryRepo) GetSession(ctx context.Context, userID, sessionID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[sessionID]
	if !ok || s.UserID != userID {
		return Session{}, ErrNotFound
	}
	return s, nil
}

func (r *MemoryRepo) LatestSession(ctx context.Context, userID string) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var latest Session
	found := false
	for _, id := range r.order[userID] {
		s := r.sessions[id]
		if !found || !s.CreatedAt.Before(latest.CreatedAt) {
			latest, found = s, true
		}
	}
	if !found {
		return Session{}, ErrNotFound
	}
	return latest, nil
}

func (r *MemoryRepo) AddMessage(ctx context.Context, m Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[m.SessionID]; !ok {
		return ErrNotFound
	}
	r.messages[m.SessionID] = append(r.messages[m.SessionID], m)
	return nil
}

func (r *MemoryRepo) Messages(ctx context.Context, sessionID string) ([]Message, error) {
	return r.RecentMessages(ctx, sessionID, 0)
}

func (r *MemoryRepo) RecentMessages(ctx context.Context, sessionID string, limit int) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.messages[sessionID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]Message, len(all))
	copy(out, all)
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
