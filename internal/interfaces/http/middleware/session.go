package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/asadlib11/arbolitics-dashboard/internal/session"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/errors"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/utils"
)

const sessionManagerKey = "session_manager"

// Session installs the session manager on every request context. Handlers
// reach it through SessionFromContext.
func Session(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(sessionManagerKey, manager)
		c.Next()
	}
}

// SessionFromContext returns the installed session manager. Calling it on a
// request that never passed through the Session middleware is a programming
// error and yields session.ErrNotInContext.
func SessionFromContext(c *gin.Context) (*session.Manager, error) {
	value, exists := c.Get(sessionManagerKey)
	if !exists {
		return nil, session.ErrNotInContext
	}
	manager, ok := value.(*session.Manager)
	if !ok {
		return nil, session.ErrNotInContext
	}
	return manager, nil
}

// RequireAuth rejects requests arriving without an authenticated session.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		manager, err := SessionFromContext(c)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		if !manager.IsAuthenticated() {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}

		c.Next()
	}
}
