package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"bookingslots/internal/http/middlewares"
)

func jsonGuardedRouter() *gin.Engine {
	r := gin.New()
	r.Use(middlewares.RequireJSON())
	r.POST("/write", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/read", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func TestRequireJSON(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		contentType    string
		wantStatusCode int
	}{
		{"json", http.MethodPost, "/write", "application/json", http.StatusOK},
		{"json_with_charset", http.MethodPost, "/write", "application/json; charset=utf-8", http.StatusOK},
		{"json_case_insensitive", http.MethodPost, "/write", "Application/JSON", http.StatusOK},
		{"plain_text", http.MethodPost, "/write", "text/plain", http.StatusUnsupportedMediaType},
		{"form", http.MethodPost, "/write", "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"missing", http.MethodPost, "/write", "", http.StatusUnsupportedMediaType},
		{"reads_unguarded", http.MethodGet, "/read", "", http.StatusOK},
	}

	r := jsonGuardedRouter()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader("{}"))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d", w.Code, tt.wantStatusCode)
			}
		})
	}
}
