package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "dominium-listings/internal/errors"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRateLimiterAllowPerKey(t *testing.T) {
	rl := NewWindowLimiter(2, time.Minute)

	if !rl.Allow("a") || !rl.Allow("a") {
		t.Fatal("first two events for key a were refused")
	}
	if rl.Allow("a") {
		t.Error("third event for key a was allowed")
	}
	if !rl.Allow("b") {
		t.Error("key b shares the budget of key a")
	}
}

func TestRateLimiterPrunesIdleKeys(t *testing.T) {
	rl := NewWindowLimiter(1, time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(2 * time.Hour)
	rl.Allow("fresh")
	rl.prune(time.Hour)

	if _, ok := rl.limiters["old"]; ok {
		t.Error("idle limiter was not pruned")
	}
	if _, ok := rl.limiters["fresh"]; !ok {
		t.Error("active limiter was pruned")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(NewWindowLimiter(1, time.Minute)))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	codes := []int{}
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("status codes = %v; want [200 429]", codes)
	}
}

func TestErrorHandlerIncludesFieldErrors(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/fail", func(c *gin.Context) {
		c.Error(apperrors.NewValidationError(map[string]string{"url": "This field is required."}))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", w.Code)
	}
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
		Errors map[string]string `json:"errors"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error.Code != apperrors.ErrCodeValidation {
		t.Errorf("code = %q; want %q", body.Error.Code, apperrors.ErrCodeValidation)
	}
	if body.Errors["url"] == "" {
		t.Errorf("errors = %v; want url entry", body.Errors)
	}
}
