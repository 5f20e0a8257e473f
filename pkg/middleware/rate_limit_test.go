package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quickcourt/pkg/logger"
)

func testLog() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestRequestRateLimiter_Allow(t *testing.T) {
	limiter := NewRequestRateLimiter(3, time.Minute, DefaultKeyExtractor, testLog())
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		if !limiter.Allow("user-1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if limiter.Allow("user-1") {
		t.Error("request over the limit should be rejected")
	}

	// Separate keys have separate budgets.
	if !limiter.Allow("user-2") {
		t.Error("another user's first request should be allowed")
	}
}

func TestRequestRateLimiter_WindowSlides(t *testing.T) {
	limiter := NewRequestRateLimiter(1, 20*time.Millisecond, DefaultKeyExtractor, testLog())
	defer limiter.Stop()

	if !limiter.Allow("user-1") {
		t.Fatal("first request should be allowed")
	}
	if limiter.Allow("user-1") {
		t.Fatal("second request inside window should be rejected")
	}

	time.Sleep(30 * time.Millisecond)
	if !limiter.Allow("user-1") {
		t.Error("request after window elapsed should be allowed")
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewRequestRateLimiter(1, time.Minute, DefaultKeyExtractor, testLog())
	defer limiter.Stop()

	handler := RateLimit(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	send := func() int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/availability", nil)
		req.Header.Set(HeaderUserID, "user-1")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	if got := send(); got != http.StatusOK {
		t.Fatalf("first request status = %d, want %d", got, http.StatusOK)
	}
	if got := send(); got != http.StatusTooManyRequests {
		t.Errorf("second request status = %d, want %d", got, http.StatusTooManyRequests)
	}
}

func TestDefaultKeyExtractor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "user-1")
	if got := DefaultKeyExtractor(req); got != "user-1" {
		t.Errorf("key = %q, want user-1", got)
	}

	anon := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := DefaultKeyExtractor(anon); got != anon.RemoteAddr {
		t.Errorf("key = %q, want remote addr %q", got, anon.RemoteAddr)
	}
}

func TestActorInjection(t *testing.T) {
	var gotActor bool
	var actorID, actorRole string
	handler := ActorInjection()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := ActorFromContext(r.Context())
		gotActor = ok
		actorID = actor.UserID
		actorRole = actor.Role
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "user-1")
	req.Header.Set(HeaderUserRole, "owner")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !gotActor || actorID != "user-1" || actorRole != "owner" {
		t.Errorf("actor = %s/%s (ok=%v), want user-1/owner", actorID, actorRole, gotActor)
	}

	// Unknown roles collapse to user; identity is never trusted beyond it.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderUserID, "user-2")
	req.Header.Set(HeaderUserRole, "superadmin")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if actorRole != "user" {
		t.Errorf("unknown role mapped to %q, want user", actorRole)
	}

	// No identity header, no actor.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)
	if gotActor {
		t.Error("request without identity should carry no actor")
	}
}
