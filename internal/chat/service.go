package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"legal-backend/internal/activities"
	"legal-backend/internal/llm"
	"legal-backend/internal/shared/metrics"
	"legal-backend/internal/shared/telemetry"
)

const (
	maxContentRunes = 4000
	newSessionTitle = "New Chat Session"
)

// ActivityLog records new sessions in the user's activity feed.
type ActivityLog interface {
	Record(ctx context.Context, userID string, typ activities.Type, title, documentID string) (activities.Activity, error)
}

// SendInput is one user message. An empty SessionID continues the newest session.
type SendInput struct {
	SessionID string
	Content   string
}

// Transcript is a session with all of its messages.
type Transcript struct {
	Session  Session
	Messages []Message
}

// Service answers user messages with the model and keeps the conversation.
type Service struct {
	LLM        llm.Client
	Model      string
	Config     llm.GenerationConfig
	Repo       Repo
	Activities ActivityLog
	Now        func() time.Time
}

// NewService constructs a Service with the chat sampling defaults.
func NewService(client llm.Client, repo Repo, acts ActivityLog) *Service {
	return &Service{
		LLM:        client,
		Config:     llm.ChatConfig,
		Repo:       repo,
		Activities: acts,
		Now:        time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// Send stores the user's message, asks the model with the recent history and
// stores the reply. Errors match ErrValidation, ErrNotFound, ErrUpstream or
// ErrPersistence.
func (s *Service) Send(ctx context.Context, userID string, in SendInput) (Message, error) {
	reply, err := s.send(ctx, userID, in)
	if err != nil {
		metrics.IncChatFailed()
		telemetry.Error("chat.failed", map[string]any{
			"user_id":    userID,
			"session_id": in.SessionID,
			"error":      err,
		})
		return Message{}, err
	}
	metrics.IncChatReplies()
	telemetry.Info("chat.replied", map[string]any{
		"user_id":    userID,
		"session_id": reply.SessionID,
		"message_id": reply.ID,
	})
	return reply, nil
}

func (s *Service) send(ctx context.Context, userID string, in SendInput) (Message, error) {
	userID = strings.TrimSpace(userID)
	content := strings.TrimSpace(in.Content)
	switch {
	case userID == "":
		return Message{}, invalid("user is required")
	case content == "":
		return Message{}, invalid("content is required")
	case utf8.RuneCountInString(content) > maxContentRunes:
		return Message{}, invalid(fmt.Sprintf("content must be at most %d characters", maxContentRunes))
	}

	session, err := s.sessionForSend(ctx, userID, strings.TrimSpace(in.SessionID))
	if err != nil {
		return Message{}, err
	}

	history, err := s.Repo.RecentMessages(ctx, session.ID, HistoryTurns)
	if err != nil {
		return Message{}, persistence(err, "load chat history")
	}
	if err := s.Repo.AddMessage(ctx, s.message(session.ID, content, true)); err != nil {
		return Message{}, persistence(err, "save user message")
	}

	raw, err := s.LLM.Generate(ctx, Prompt(s.Model, history, content), s.Config)
	if err != nil {
		return Message{}, upstream(err, "generate chat reply")
	}
	text := strings.TrimSpace(raw)
	if text == "" {
		return Message{}, upstream(llm.ErrEmptyResponse, "generate chat reply")
	}

	reply := s.message(session.ID, text, false)
	if err := s.Repo.AddMessage(ctx, reply); err != nil {
		return Message{}, persistence(err, "save assistant reply")
	}
	return reply, nil
}

// sessionForSend resolves an explicit session, or continues the newest one,
// or opens a first session and logs it as a chat activity.
func (s *Service) sessionForSend(ctx context.Context, userID, sessionID string) (Session, error) {
	if sessionID != "" {
		return s.lookup(ctx, userID, sessionID)
	}
	session, err := s.Repo.LatestSession(ctx, userID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Session{}, persistence(err, "load latest chat session")
	}
	session, err = s.createSession(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	if _, err := s.Activities.Record(ctx, userID, activities.TypeChat, newSessionTitle, ""); err != nil {
		return Session{}, persistence(err, "record chat activity")
	}
	return session, nil
}

// Transcript returns a session with its messages. Without a session ID it
// returns the newest session, opening an empty one when the user has none.
func (s *Service) Transcript(ctx context.Context, userID, sessionID string) (Transcript, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Transcript{}, invalid("user is required")
	}

	var session Session
	var err error
	if sessionID = strings.TrimSpace(sessionID); sessionID != "" {
		session, err = s.lookup(ctx, userID, sessionID)
	} else {
		session, err = s.Repo.LatestSession(ctx, userID)
		if errors.Is(err, ErrNotFound) {
			session, err = s.createSession(ctx, userID)
		} else if err != nil {
			err = persistence(err, "load latest chat session")
		}
	}
	if err != nil {
		return Transcript{}, err
	}

	msgs, err := s.Repo.Messages(ctx, session.ID)
	if err != nil {
		return Transcript{}, persistence(err, "load chat messages")
	}
	return Transcript{Session: session, Messages: msgs}, nil
}

func (s *Service) lookup(ctx context.Context, userID, sessionID string) (Session, error) {
	session, err := s.Repo.GetSession(ctx, userID, sessionID)
	if errors.Is(err, ErrNotFound) {
		return Session{}, ErrNotFound
	}
	if err != nil {
		return Session{}, persistence(err, "load chat session")
	}
	return session, nil
}

func (s *Service) createSession(ctx context.Context, userID string) (Session, error) {
	session := Session{ID: uuid.NewString(), UserID: userID, CreatedAt: s.now()}
	if err := s.Repo.CreateSession(ctx, session); err != nil {
		return Session{}, persistence(err, "create chat session")
	}
	return session, nil
}

func (s *Service) message(sessionID, content string, isUser bool) Message {
	return Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Content:   content,
		IsUser:    isUser,
		CreatedAt: s.now(),
	}
}
