package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"todo_api/internal/service"

	"github.com/gin-gonic/gin"
)

func TestRoutes_CORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&service.Service{Authorization: &mockAuth{}}, nil).Routes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/lists/", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Authorization, Content-Type")
	h.ServeHTTP(w, req)

	if w.Code >= 300 {
		t.Fatalf("preflight status=%d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Allow-Origin=%q", got)
	}
	if w.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatalf("missing Allow-Methods")
	}
}

func TestRoutes_CORSSimpleRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(&service.Service{}, nil).Routes()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("Allow-Origin=%q", got)
	}
}

func TestRoutes_UnknownRouteHasDetail(t *testing.T) {
	r := newTestRouter(&service.Service{})
	w := doJSON(r, http.MethodGet, "/nope", "", nil)
	if w.Code != http.StatusNotFound || detailOf(t, w) == "" {
		t.Fatalf("expected 404 with detail, got %d %s", w.Code, w.Body.String())
	}
}
