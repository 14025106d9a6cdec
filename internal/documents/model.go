package documents

import (
	"errors"
	"time"
)

// Type distinguishes generated drafts from analyzed uploads.
type Type string

const (
	TypeGenerated Type = "generated"
	TypeAnalyzed  Type = "analyzed"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Document is a legal document owned by a user. Date is YYYY-MM-DD.
type Document struct {
	ID            string
	UserID        string
	Type          Type
	Title         string
	AgreementType string
	PartyOne      string
	PartyTwo      string
	Description   string
	Date          string
	Content       string
	FilePath      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
