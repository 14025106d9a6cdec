package chat

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"legal-backend/internal/shared/server/middleware"
	"legal-backend/internal/shared/server/respond"
)

// Handler exposes the assistant endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches chat routes. before runs ahead of the send route only.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, before ...gin.HandlerFunc) {
	rg.POST("/chat", append(before, h.send)...)
	rg.GET("/chat", h.session)
	rg.GET("/chat/:sessionId", h.session)
}

type sendRequest struct {
	Content   string `json:"content"`
	SessionID string `json:"session_id"`
}

type messageResponse struct {
	ID        string `json:"id"`
	SessionID string `json:"sessionId,omitempty"`
	Content   string `json:"content"`
	IsUser    bool   `json:"isUser"`
	Timestamp string `json:"timestamp"`
}

type sessionResponse struct {
	ID        string            `json:"id"`
	Messages  []messageResponse `json:"messages"`
	CreatedAt string            `json:"created_at"`
}

func (h *Handler) send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	reply, err := h.Svc.Send(c.Request.Context(), middleware.UserIDFromContext(c), SendInput{
		SessionID: req.SessionID,
		Content:   req.Content,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	resp := toMessageResponse(reply)
	resp.SessionID = reply.SessionID
	respond.OK(c, resp)
}

func (h *Handler) session(c *gin.Context) {
	tr, err := h.Svc.Transcript(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("sessionId"))
	if err != nil {
		writeError(c, err)
		return
	}
	msgs := make([]messageResponse, 0, len(tr.Messages))
	for _, m := range tr.Messages {
		msgs = append(msgs, toMessageResponse(m))
	}
	respond.OK(c, sessionResponse{
		ID:        tr.Session.ID,
		Messages:  msgs,
		CreatedAt: timestamp(tr.Session.CreatedAt),
	})
}

func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		respond.Error(c, http.StatusBadRequest, "validation_error", ErrorMessage(err), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "chat session not found", nil)
	case errors.Is(err, ErrUpstream):
		respond.Error(c, http.StatusBadGateway, "upstream_error", "chat assistant is unavailable", nil)
	case errors.Is(err, ErrPersistence):
		respond.Error(c, http.StatusInternalServerError, "persistence_error", "failed to save chat message", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process chat message", nil)
	}
}

func toMessageResponse(m Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		Content:   m.Content,
		IsUser:    m.IsUser,
		Timestamp: timestamp(m.CreatedAt),
	}
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
