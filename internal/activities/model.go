package activities

import (
	"errors"
	"time"
)

// Type names the feature that produced an activity.
type Type string

const (
	TypeGenerator Type = "generator"
	TypeAnalyzer  Type = "analyzer"
	TypeChat      Type = "chat"
)

var ErrInvalidInput = errors.New("invalid input")

// Activity is one entry in a user's recent-activity feed.
type Activity struct {
	ID         string
	UserID     string
	Type       Type
	Title      string
	DocumentID string
	CreatedAt  time.Time
}

// Valid reports whether t is a known activity type.
func (t Type) Valid() bool {
	switch t {
	case TypeGenerator, TypeAnalyzer, TypeChat:
		return true
	}
	return false
}
