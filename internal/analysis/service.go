package analysis

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"legal-backend/internal/activities"
	"legal-backend/internal/documents"
	"legal-backend/internal/extract"
	"legal-backend/internal/llm"
	"legal-backend/internal/shared/metrics"
	"legal-backend/internal/shared/storage/object"
	"legal-backend/internal/shared/telemetry"
)

// MaxUploadBytes is the largest document accepted for analysis.
const MaxUploadBytes = 10 << 20

// DocumentStore persists analyzed documents.
type DocumentStore interface {
	Create(ctx context.Context, doc documents.Document) error
}

// ActivityLog records the analysis in the user's activity feed.
type ActivityLog interface {
	Record(ctx context.Context, userID string, typ activities.Type, title, documentID string) (activities.Activity, error)
}

// AnalyzeInput is one analysis call.
type AnalyzeInput struct {
	FileName string
	Data     []byte
	Kind     MediaKind
	UserID   string
}

// Service runs the analysis pipeline: store the upload, prompt the model,
// extract and normalize the answer, then persist it.
type Service struct {
	Builder    *Builder
	Extractor  *Extractor
	Dates      Normalizer // falls back to Now when its own clock is unset
	LLM        llm.Client
	Store      object.ObjectStore
	Documents  DocumentStore
	Activities ActivityLog
	Schema     FieldSchema
	Now        func() time.Time
}

// NewService wires a Service with the default extractor and schema.
func NewService(client llm.Client, store object.ObjectStore, docs DocumentStore, acts ActivityLog, cfg BuilderConfig) *Service {
	return &Service{
		Builder:    NewBuilder(cfg, extract.Extractor{MaxChars: cfg.MaxTextChars}),
		Extractor:  NewExtractor(),
		Dates:      Normalizer{},
		LLM:        client,
		Store:      store,
		Documents:  docs,
		Activities: acts,
		Schema:     DefaultSchema,
		Now:        time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now().UTC()
}

// AnalyzeDocument runs one document through the pipeline. Errors match
// ErrValidation, ErrUpstream or ErrPersistence.
func (s *Service) AnalyzeDocument(ctx context.Context, in AnalyzeInput) (Record, error) {
	start := time.Now()
	metrics.IncAnalysisStarted()

	rec, stage, err := s.analyze(ctx, in)
	metrics.ObserveAnalysisDurationMs(metrics.SinceMillis(start))
	if err != nil {
		metrics.IncAnalysisFailed()
		telemetry.Error("analysis.failed", map[string]any{
			"user_id":   in.UserID,
			"file_name": in.FileName,
			"kind":      string(in.Kind),
			"error":     err,
		})
		return Record{}, err
	}

	metrics.IncAnalysisCompleted()
	telemetry.Info("analysis.completed", map[string]any{
		"document_id": rec.ID,
		"user_id":     rec.UserID,
		"stage":       string(stage),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return rec, nil
}

func (s *Service) analyze(ctx context.Context, in AnalyzeInput) (Record, Stage, error) {
	if err := validateInput(in); err != nil {
		return Record{}, "", err
	}
	now := s.now()

	if in.Kind == KindPDF {
		if pages, err := extract.PageCount(in.Data); err == nil {
			telemetry.Info("analysis.stage", map[string]any{"stage": "validated", "pages": pages, "user_id": in.UserID})
		}
	}

	key, err := object.UploadKey(in.UserID, in.FileName, now)
	if err != nil {
		return Record{}, "", invalid("invalid file name")
	}
	if _, err := s.Store.Put(ctx, key, in.Kind.MIMEType(), bytes.NewReader(in.Data)); err != nil {
		return Record{}, "", persistence(err, "store upload")
	}

	payload, err := s.Builder.Build(ctx, AnalysisRequest{FileName: in.FileName, Data: in.Data, Kind: in.Kind}, s.Schema)
	if err != nil {
		return Record{}, "", err
	}
	raw, err := s.LLM.Generate(ctx, payload.Prompt, payload.Config)
	if err != nil {
		return Record{}, "", upstream(err, "generate analysis")
	}
	if strings.TrimSpace(raw) == "" {
		return Record{}, "", upstream(llm.ErrEmptyResponse, "generate analysis")
	}

	fields, stage := s.Extractor.Extract(raw)
	telemetry.Info("analysis.stage", map[string]any{"stage": string(stage), "user_id": in.UserID})
	if stage.Degraded() {
		metrics.IncAnalysisDegraded()
	}

	dates := s.Dates
	if dates.Now == nil {
		dates.Now = s.now
	}
	rec := Assemble(fields, dates.Normalize(fields.Date), raw, key)
	rec.ID = uuid.NewString()
	rec.UserID = in.UserID
	rec.CreatedAt = now

	doc := documents.Document{
		ID:            rec.ID,
		UserID:        rec.UserID,
		Type:          documents.TypeAnalyzed,
		Title:         rec.Title,
		AgreementType: rec.AgreementType,
		PartyOne:      rec.PartyOne,
		PartyTwo:      rec.PartyTwo,
		Description:   rec.Description,
		Date:          rec.Date,
		Content:       rec.Content,
		FilePath:      rec.FilePath,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Documents.Create(ctx, doc); err != nil {
		return Record{}, stage, persistence(err, "save analyzed document")
	}
	if _, err := s.Activities.Record(ctx, rec.UserID, activities.TypeAnalyzer, activityTitle(rec.Title), rec.ID); err != nil {
		return Record{}, stage, persistence(err, "record analysis activity")
	}
	return rec, stage, nil
}

func validateInput(in AnalyzeInput) error {
	if strings.TrimSpace(in.UserID) == "" {
		return invalid("user is required")
	}
	if len(in.Data) == 0 {
		return invalid("file is required")
	}
	if len(in.Data) > MaxUploadBytes {
		return invalid("file exceeds the 10MB limit")
	}
	switch in.Kind {
	case KindPDF, KindDOCX, KindText:
	default:
		return invalid("unsupported file type; upload a PDF, DOCX or TXT file")
	}
	if err := extract.Validate(in.Data, in.Kind); err != nil {
		return invalid("file is not a valid " + strings.ToUpper(string(in.Kind)) + " document")
	}
	return nil
}

func activityTitle(title string) string {
	if title == "" || title == PlaceholderTitle {
		return "Document Analysis"
	}
	return title
}
