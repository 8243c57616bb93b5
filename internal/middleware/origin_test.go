package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newOriginTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	allowed := []string{"https://rockygeekz.dev", "http://localhost:3000"}
	r := gin.New()
	r.OPTIONS("/api/*any", PreflightHandler(allowed))
	api := r.Group("/api", OriginGuard(allowed))
	api.POST("/chat", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestOriginGuardAllowsListedOrigin(t *testing.T) {
	r := newOriginTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Origin", "https://rockygeekz.dev")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://rockygeekz.dev", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOriginGuardRejectsUnknownOrigin(t *testing.T) {
	r := newOriginTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized origin")
}

func TestOriginGuardRejectsMissingOrigin(t *testing.T) {
	// 无 Origin 的直接调用（curl 等）同样拒绝
	r := newOriginTestRouter()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Unauthorized origin")
}

func TestPreflight(t *testing.T) {
	r := newOriginTestRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "https://evil.example")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
