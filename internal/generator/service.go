package generator

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"legal-backend/internal/activities"
	"legal-backend/internal/analysis"
	"legal-backend/internal/documents"
	"legal-backend/internal/htmldoc"
	"legal-backend/internal/llm"
	"legal-backend/internal/shared/metrics"
	"legal-backend/internal/shared/storage/object"
	"legal-backend/internal/shared/telemetry"
)

// DocumentStore persists generated drafts.
type DocumentStore interface {
	Create(ctx context.Context, doc documents.Document) error
	UpdateFilePath(ctx context.Context, userID, documentID, filePath string) error
}

// ActivityLog records the draft in the user's activity feed.
type ActivityLog interface {
	Record(ctx context.Context, userID string, typ activities.Type, title, documentID string) (activities.Activity, error)
}

// Result is a stored draft.
type Result struct {
	ID          string
	Content     string
	FilePath    string
	DownloadURL string
	HTMLURL     string
}

// Service drafts agreements with the model and stores them as documents.
type Service struct {
	LLM        llm.Client
	Model      string
	Config     llm.GenerationConfig
	Store      object.ObjectStore
	Documents  DocumentStore
	Activities ActivityLog
	Dates      analysis.Normalizer
	// BaseURL prefixes the returned links. Empty yields paths relative to the host.
	BaseURL string
	Now     func() time.Time
}

// NewService wires a Service with the drafting defaults.
func NewService(client llm.Client, store object.ObjectStore, docs DocumentStore, acts ActivityLog) *Service {
	return &Service{
		LLM:        client,
		Model:      DefaultModel,
		Config:     llm.DraftingConfig,
		Store:      store,
		Documents:  docs,
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

// Generate drafts one agreement. Errors match ErrValidation, ErrUpstream or
// ErrPersistence.
func (s *Service) Generate(ctx context.Context, userID string, req Request) (Result, error) {
	start := time.Now()
	res, err := s.generate(ctx, userID, req)
	metrics.ObserveGenerationDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncGenerationFailed()
		telemetry.Error("generation.failed", map[string]any{
			"user_id":       userID,
			"document_type": req.DocumentType,
			"error":         err,
		})
		return Result{}, err
	}
	metrics.IncGenerationCompleted()
	telemetry.Info("generation.completed", map[string]any{
		"document_id": res.ID,
		"user_id":     userID,
		"file_path":   res.FilePath,
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return res, nil
}

func (s *Service) generate(ctx context.Context, userID string, req Request) (Result, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Result{}, &ValidationError{Fields: map[string]string{"user": "is required"}}
	}
	req, err := req.Normalize()
	if err != nil {
		return Result{}, err
	}

	raw, err := s.LLM.Generate(ctx, Prompt(s.Model, req), s.Config)
	if err != nil {
		return Result{}, upstream(err, "generate document")
	}
	if strings.TrimSpace(htmldoc.Clean(raw)) == "" {
		return Result{}, upstream(llm.ErrEmptyResponse, "generate document")
	}
	content, err := htmldoc.Normalize(raw, req.Title)
	if err != nil {
		return Result{}, upstream(err, "render generated document")
	}

	now := s.now()
	dates := s.Dates
	if dates.Now == nil {
		dates.Now = s.now
	}
	doc := documents.Document{
		ID:            uuid.NewString(),
		UserID:        userID,
		Type:          documents.TypeGenerated,
		Title:         req.Title,
		AgreementType: req.AgreementType,
		PartyOne:      req.PartyOne,
		PartyTwo:      req.PartyTwo,
		Description:   req.Description,
		Date:          dates.Normalize(req.Date),
		Content:       content,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Documents.Create(ctx, doc); err != nil {
		return Result{}, persistence(err, "save generated document")
	}

	// Downloads materialize the file lazily, so a failed write only loses the eager copy.
	key := object.DocumentKey(userID, req.Title, "html", now)
	if err := s.storeFile(ctx, userID, doc.ID, key, content); err != nil {
		telemetry.Warn("generation.file_deferred", map[string]any{
			"document_id": doc.ID,
			"user_id":     userID,
			"error":       err,
		})
		key = ""
	}

	if _, err := s.Activities.Record(ctx, userID, activities.TypeGenerator, req.Title, doc.ID); err != nil {
		return Result{}, persistence(err, "record generation activity")
	}

	base := strings.TrimRight(s.BaseURL, "/") + "/api/v1/documents/" + doc.ID
	return Result{
		ID:          doc.ID,
		Content:     content,
		FilePath:    key,
		DownloadURL: base + "/download",
		HTMLURL:     base + "/content",
	}, nil
}

func (s *Service) storeFile(ctx context.Context, userID, documentID, key, content string) error {
	if _, err := s.Store.Put(ctx, key, "text/html; charset=utf-8", strings.NewReader(content)); err != nil {
		return err
	}
	return s.Documents.UpdateFilePath(ctx, userID, documentID, key)
}
