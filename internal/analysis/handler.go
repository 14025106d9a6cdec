package analysis

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"legal-backend/internal/extract"
	"legal-backend/internal/shared/server/middleware"
	"legal-backend/internal/shared/server/respond"
)

// multipart framing on top of the file itself
const maxRequestBytes = MaxUploadBytes + 1<<20

// Handler exposes the analysis endpoint.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the analysis route. Extra handlers run before it,
// which is where the AI rate limit goes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, before ...gin.HandlerFunc) {
	rg.POST("/documents/analyze", append(before, h.analyze)...)
}

type analyzeResponse struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Date          string `json:"date"`
	PartyOne      string `json:"partyOne"`
	PartyTwo      string `json:"partyTwo"`
	AgreementType string `json:"agreementType"`
	Description   string `json:"description"`
	HTMLSummary   string `json:"htmlSummary"`
	FilePath      string `json:"filePath"`
}

func (h *Handler) analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds the 10MB limit", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > MaxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file exceeds the 10MB limit", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}

	kind, ok := extract.KindFromFile(fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unsupported file type; upload a PDF, DOCX or TXT file", nil)
		return
	}

	rec, err := h.Svc.AnalyzeDocument(c.Request.Context(), AnalyzeInput{
		FileName: fileHeader.Filename,
		Data:     data,
		Kind:     kind,
		UserID:   middleware.UserIDFromContext(c),
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			respond.Error(c, http.StatusBadRequest, "validation_error", Message(err), nil)
		case errors.Is(err, ErrUpstream):
			respond.Error(c, http.StatusBadGateway, "upstream_error", "document analysis service is unavailable", nil)
		case errors.Is(err, ErrPersistence):
			respond.Error(c, http.StatusInternalServerError, "persistence_error", "failed to save analysis", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to analyze document", nil)
		}
		return
	}

	respond.OK(c, analyzeResponse{
		ID:            rec.ID,
		Title:         rec.Title,
		Date:          rec.Date,
		PartyOne:      rec.PartyOne,
		PartyTwo:      rec.PartyTwo,
		AgreementType: rec.AgreementType,
		Description:   rec.Description,
		HTMLSummary:   rec.HTMLSummary,
		FilePath:      rec.FilePath,
	})
}
