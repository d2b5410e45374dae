package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asadlib11/arbolitics-dashboard/internal/session"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSessionFromContextOutsideProviderScope(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := SessionFromContext(c)
	require.Error(t, err)
	assert.ErrorIs(t, err, session.ErrNotInContext)
}

func TestSessionMiddlewareInstallsManager(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), discardLogger())

	engine := gin.New()
	engine.Use(Session(manager))
	engine.GET("/probe", func(c *gin.Context) {
		got, err := SessionFromContext(c)
		require.NoError(t, err)
		assert.Same(t, manager, got)
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRequireAuthWithoutSessionMiddlewareIs500(t *testing.T) {
	engine := gin.New()
	engine.GET("/gated", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gated", nil))

	// Missing provider is a programming error, not an auth failure; the
	// wire sees the mapped generic body, never the contract detail.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}

func TestRequireAuthRejectsLoggedOutSession(t *testing.T) {
	manager := session.NewManager(session.NewMemoryStore(), discardLogger())

	engine := gin.New()
	engine.Use(Session(manager))
	engine.GET("/gated", RequireAuth(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/gated", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Authentication required"}`, w.Body.String())
}
