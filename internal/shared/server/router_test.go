package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"legal-backend/internal/activities"
	"legal-backend/internal/documents"
	"legal-backend/internal/generator"
	"legal-backend/internal/llm"
	"legal-backend/internal/shared/auth"
	"legal-backend/internal/shared/config"
	"legal-backend/internal/shared/server/middleware"
	"legal-backend/internal/shared/storage/object/local"
	"legal-backend/internal/shared/util"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := local.New(t.TempDir())
	docs := documents.NewMemoryRepo()
	acts := activities.NewService(activities.NewMemoryRepo())
	gen := generator.NewService(llm.PlaceholderClient{}, store, docs, acts)

	return NewRouter(RouterDeps{
		Config:            config.Config{RateLimitAIRate: 0.01, RateLimitAIBurst: 1},
		Verifier:          auth.NewVerifier("test-secret"),
		RateLimiter:       middleware.NewRateLimiter(nil),
		GeneratorHandler:  generator.NewHandler(gen),
		DocumentsHandler:  documents.NewHandler(documents.NewService(store, docs)),
		ActivitiesHandler: activities.NewHandler(acts),
	})
}

func TestHealthAndMetricsArePublic(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/api/v1/health", "/metrics"} {
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, path, nil))
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
	}
}

func TestProtectedRoutesNeedIdentity(t *testing.T) {
	router := newTestRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/documents", nil))
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func getMe(t *testing.T, router *gin.Engine, header, value string) identityResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set(header, value)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body identityResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return body
}

func TestMeReportsGuest(t *testing.T) {
	body := getMe(t, newTestRouter(t), "X-Guest-Id", "abc")

	if body.UserID != "guest:abc" || !body.IsGuest || body.AuthMethod != "guest" {
		t.Fatalf("unexpected identity: %+v", body)
	}
	if body.StorageKey != util.HashUserKey("guest:abc") {
		t.Fatalf("unexpected storage key: %q", body.StorageKey)
	}
	if body.AILimit.PerMinute != 1 || body.AILimit.Burst != 1 {
		t.Fatalf("unexpected ai limit: %+v", body.AILimit)
	}
}

func TestMeReportsTokenClaims(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		Email: "budi@example.com",
		Name:  "Budi",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	body := getMe(t, newTestRouter(t), "Authorization", "Bearer "+token)

	if body.UserID != "user-42" || body.IsGuest || body.AuthMethod != "jwt" {
		t.Fatalf("unexpected identity: %+v", body)
	}
	if body.Email != "budi@example.com" || body.Name != "Budi" {
		t.Fatalf("unexpected claims: %+v", body)
	}
}

func TestGenerateIsRateLimited(t *testing.T) {
	router := newTestRouter(t)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/generate", bytes.NewBufferString("{}"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Guest-Id", "abc")
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		return resp
	}

	if first := send(); first.Code != http.StatusBadRequest {
		t.Fatalf("expected first request to reach validation, got %d", first.Code)
	}
	second := send()
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", second.Code)
	}
	if second.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestAddr(t *testing.T) {
	cases := map[string]string{"": ":8080", "9000": ":9000", ":7000": ":7000"}
	for in, want := range cases {
		if got := Addr(in); got != want {
			t.Fatalf("Addr(%q) = %q, want %q", in, got, want)
		}
	}
}
