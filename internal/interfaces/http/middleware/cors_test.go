package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSTestServer(allowedOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(CORS(allowedOrigins))
	engine.GET("/resource", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestCORSEchoesAllowedOrigin(t *testing.T) {
	engine := newCORSTestServer([]string{"http://localhost:3000"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSDisallowedOriginGetsEmptyHeader(t *testing.T) {
	engine := newCORSTestServer([]string{"http://localhost:3000"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	engine.ServeHTTP(w, req)

	// The request still succeeds; the browser enforces the empty header.
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	handlerRan := false
	engine := gin.New()
	engine.Use(CORS([]string{"http://localhost:3000"}))
	engine.OPTIONS("/resource", func(c *gin.Context) {
		handlerRan = true
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/resource", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.False(t, handlerRan)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}
