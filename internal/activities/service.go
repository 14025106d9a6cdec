package activities

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// Service records and lists user activities.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// NewService constructs a Service.
func NewService(repo Repo) *Service {
	return &Service{Repo: repo, Now: time.Now}
}

// Record stores a new activity and returns it with its ID and timestamp set.
func (s *Service) Record(ctx context.Context, userID string, typ Type, title, documentID string) (Activity, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" || !typ.Valid() {
		return Activity{}, ErrInvalidInput
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	a := Activity{
		ID:         uuid.NewString(),
		UserID:     userID,
		Type:       typ,
		Title:      strings.TrimSpace(title),
		DocumentID: documentID,
		CreatedAt:  now().UTC(),
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return Activity{}, eris.Wrapf(err, "record %s activity", typ)
	}
	return a, nil
}

// Recent returns the user's newest activities.
func (s *Service) Recent(ctx context.Context, userID string, limit int) ([]Activity, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	return s.Repo.ListByUser(ctx, userID, limit)
}
