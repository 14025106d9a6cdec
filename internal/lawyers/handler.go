package lawyers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"legal-backend/internal/shared/server/respond"
	"legal-backend/internal/shared/telemetry"
)

// Handler exposes the lawyer directory.
type Handler struct {
	Repo Repo
}

// NewHandler constructs a Handler.
func NewHandler(repo Repo) *Handler {
	return &Handler{Repo: repo}
}

// RegisterRoutes attaches lawyer routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/lawyers", h.search)
}

type contactInfo struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type lawyerResponse struct {
	ID              string      `json:"id"`
	Name            string      `json:"name"`
	Specialization  []string    `json:"specialization"`
	Location        string      `json:"location"`
	Rating          float64     `json:"rating"`
	ExperienceYears int         `json:"experience_years"`
	ImageURL        string      `json:"image_url"`
	ContactInfo     contactInfo `json:"contact_info"`
	Available       bool        `json:"available"`
}

type searchResponse struct {
	Data  []lawyerResponse `json:"data"`
	Total int              `json:"total"`
}

func (h *Handler) search(c *gin.Context) {
	q, err := queryFromRequest(c)
	if err == nil {
		q, err = q.Normalize()
	}
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid search parameters", nil)
		return
	}

	found, total, err := h.Repo.Search(c.Request.Context(), q)
	if err != nil {
		telemetry.Error("lawyers.search_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search lawyers", nil)
		return
	}

	resp := searchResponse{Data: make([]lawyerResponse, 0, len(found)), Total: total}
	for _, l := range found {
		specs := l.Specialization
		if specs == nil {
			specs = []string{}
		}
		resp.Data = append(resp.Data, lawyerResponse{
			ID:              l.ID,
			Name:            l.Name,
			Specialization:  specs,
			Location:        l.Location,
			Rating:          l.Rating,
			ExperienceYears: l.ExperienceYears,
			ImageURL:        l.ImageURL,
			ContactInfo:     contactInfo{Email: l.Email, Phone: l.Phone},
			Available:       l.Available,
		})
	}
	respond.OK(c, resp)
}

func queryFromRequest(c *gin.Context) (Query, error) {
	q := Query{
		Text:            c.Query("query"),
		Location:        c.Query("location"),
		SortBy:          c.Query("sort_by"),
		Specializations: append(c.QueryArray("specialization"), c.QueryArray("specialization[]")...),
		Descending:      true,
	}
	switch strings.ToLower(c.Query("sort_order")) {
	case "", "desc":
	case "asc":
		q.Descending = false
	default:
		return Query{}, ErrInvalidQuery
	}

	var err error
	if q.MinRating, err = floatParam(c, "rating"); err != nil {
		return Query{}, err
	}
	if q.Limit, err = intParam(c, "limit"); err != nil {
		return Query{}, err
	}
	if q.Page, err = intParam(c, "page"); err != nil {
		return Query{}, err
	}
	return q, nil
}

func intParam(c *gin.Context, name string) (int, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.Join(ErrInvalidQuery, err)
	}
	return n, nil
}

func floatParam(c *gin.Context, name string) (float64, error) {
	v := strings.TrimSpace(c.Query(name))
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Join(ErrInvalidQuery, err)
	}
	return f, nil
}
