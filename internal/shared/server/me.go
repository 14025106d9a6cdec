package server

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"legal-backend/internal/shared/server/middleware"
	"legal-backend/internal/shared/server/respond"
	"legal-backend/internal/shared/util"
)

// identityResponse describes who owns the documents, activities and chat
// sessions created by this request.
type identityResponse struct {
	UserID     string        `json:"userId"`
	AuthMethod string        `json:"authMethod"`
	IsGuest    bool          `json:"isGuest"`
	Email      string        `json:"email,omitempty"`
	Name       string        `json:"name,omitempty"`
	StorageKey string        `json:"storageKey"`
	AILimit    aiLimitReport `json:"aiLimit"`
}

type aiLimitReport struct {
	PerMinute int `json:"perMinute"`
	Burst     int `json:"burst"`
}

// registerMeRoutes attaches the /me endpoint. rate is the AI budget in
// requests per second.
func registerMeRoutes(rg *gin.RouterGroup, rate float64, burst int) {
	limit := aiLimitReport{PerMinute: int(math.Round(rate * 60)), Burst: burst}
	rg.GET("/me", func(c *gin.Context) {
		userID := middleware.UserIDFromContext(c)
		if userID == "" {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
			return
		}

		resp := identityResponse{
			UserID:     userID,
			AuthMethod: "jwt",
			IsGuest:    middleware.IsGuest(c),
			Email:      middleware.UserEmailFromContext(c),
			Name:       middleware.UserNameFromContext(c),
			StorageKey: util.HashUserKey(userID),
			AILimit:    limit,
		}
		if resp.IsGuest {
			resp.AuthMethod = "guest"
		}
		respond.JSON(c, http.StatusOK, resp)
	})
}
