package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func authedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", RequireAuth(secret), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentUserID(c))
	})
	return router
}

func TestTokenRoundTrip(t *testing.T) {
	router := authedRouter("secret")

	token, err := IssueToken("secret", "user-123")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "user-123" {
		t.Errorf("expected user id from the token subject, got %q", w.Body.String())
	}
}

func TestRequireAuthRejections(t *testing.T) {
	router := authedRouter("secret")

	// Missing header.
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without a header, got %d", w.Code)
	}

	// Token signed with a different secret.
	token, err := IssueToken("other-secret", "user-123")
	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a forged token, got %d", w.Code)
	}

	// Non-bearer scheme.
	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for a non-bearer scheme, got %d", w.Code)
	}
}

func TestRateLimitEnforced(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewIPRateLimiter(rate.Limit(0), 2)

	router := gin.New()
	router.POST("/toggle", RateLimit(limiter), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// The burst of 2 is consumed, the third request is rejected.
	for i, want := range []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests} {
		req := httptest.NewRequest(http.MethodPost, "/toggle", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("request %d: expected %d, got %d", i, want, w.Code)
		}
	}

	// A different IP gets its own bucket.
	req := httptest.NewRequest(http.MethodPost, "/toggle", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expected a fresh bucket for a new IP, got %d", w.Code)
	}
}
