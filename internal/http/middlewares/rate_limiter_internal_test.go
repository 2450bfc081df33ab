package middlewares

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func limiterRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/limited", rl.Middleware(func(c *gin.Context) string {
		return c.Query("k")
	}), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func hit(r *gin.Engine, key string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited?k="+key, nil))
	return w
}

func TestRateLimiterEnforcesLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	r := limiterRouter(rl)

	for i := 0; i < 3; i++ {
		if w := hit(r, "one"); w.Code != http.StatusOK {
			t.Fatalf("request %d got %d, want 200", i, w.Code)
		}
	}

	w := hit(r, "one")
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("got %d, want 429", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Fatal("429 response missing Retry-After")
	}

	// a different key has its own window
	if w := hit(r, "two"); w.Code != http.StatusOK {
		t.Fatalf("independent key got %d, want 200", w.Code)
	}
}

// The per-key map must not grow for the life of the process: once a window
// lapses, the next request sweeps the dead buckets out.
func TestRateLimiterSweepsExpiredBuckets(t *testing.T) {
	rl := NewRateLimiter(5, 20*time.Millisecond)
	r := limiterRouter(rl)

	for i := 0; i < 40; i++ {
		hit(r, strconv.Itoa(i))
	}

	// let every window lapse, then trigger the sweep with a fresh key
	time.Sleep(30 * time.Millisecond)
	hit(r, "fresh")

	rl.mu.Lock()
	retained := len(rl.clients)
	rl.mu.Unlock()

	if retained != 1 {
		t.Fatalf("%d buckets retained after sweep, want only the live one", retained)
	}
}
