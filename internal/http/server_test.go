package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewServerServesRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewServer(RouterConfig{})
	if s.Engine == nil {
		t.Fatal("server has no engine")
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	s.Engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got=%d want=%d", rec.Code, http.StatusNotFound)
	}
}
