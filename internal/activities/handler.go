package activities

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"legal-backend/internal/shared/server/middleware"
	"legal-backend/internal/shared/server/respond"
)

// Handler exposes the activity feed.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches activity routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/activities", h.list)
}

type activityResponse struct {
	ID         string `json:"id"`
	Type       Type   `json:"type"`
	Title      string `json:"title"`
	DocumentID string `json:"documentId,omitempty"`
	Date       string `json:"date"`
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))

	items, err := h.Svc.Recent(c.Request.Context(), middleware.UserIDFromContext(c), limit)
	if err != nil {
		if errors.Is(err, ErrInvalidInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list activities", nil)
		return
	}

	resp := make([]activityResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, activityResponse{
			ID:         a.ID,
			Type:       a.Type,
			Title:      a.Title,
			DocumentID: a.DocumentID,
			Date:       a.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	respond.OK(c, resp)
}
