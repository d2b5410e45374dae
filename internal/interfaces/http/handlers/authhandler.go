package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asadlib11/arbolitics-dashboard/internal/domain/auth"
	"github.com/asadlib11/arbolitics-dashboard/internal/infrastructure/upstream"
	"github.com/asadlib11/arbolitics-dashboard/internal/interfaces/http/middleware"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/config"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/errors"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/utils"
)

const maxLoginBodySize = 64 << 10

// LoginForwarder forwards an opaque login body to the upstream auth API.
type LoginForwarder interface {
	Login(ctx context.Context, body []byte) (*upstream.LoginResult, error)
}

type AuthHandler struct {
	upstream     LoginForwarder
	logger       logger.Interface
	cookieConfig config.CookieConfig
}

func NewAuthHandler(upstreamClient LoginForwarder, log logger.Interface, cookieConfig config.CookieConfig) *AuthHandler {
	return &AuthHandler{
		upstream:     upstreamClient,
		logger:       log,
		cookieConfig: cookieConfig,
	}
}

// Login forwards the request body verbatim to the upstream auth endpoint.
// A 2xx upstream response is mirrored unchanged; the session is established
// and the token cookie mirrored as a side effect. Every failure collapses
// into the same fixed 401 body so no upstream detail leaks to the caller.
func (h *AuthHandler) Login(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxLoginBodySize))
	if err != nil {
		h.logger.Errorw("failed to read login request body", "error", err)
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication failed"))
		return
	}

	result, err := h.upstream.Login(c.Request.Context(), body)
	if err != nil {
		h.logger.Errorw("upstream login failed", "error", err)
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication failed"))
		return
	}

	if result.StatusCode < 200 || result.StatusCode >= 300 {
		h.logger.Warnw("upstream rejected login", "status", result.StatusCode)
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("Authentication failed"))
		return
	}

	h.establishSession(c, result.Body)

	c.Data(result.StatusCode, "application/json", result.Body)
}

// establishSession decodes the upstream envelope and persists the session.
// Decode failure does not fail the login mirror; the caller still gets the
// upstream body.
func (h *AuthHandler) establishSession(c *gin.Context, body []byte) {
	var loginResp auth.LoginResponse
	if err := json.Unmarshal(body, &loginResp); err != nil || loginResp.Data.AccessToken == "" {
		h.logger.Warnw("login response did not contain a usable profile", "error", err)
		return
	}

	manager, err := middleware.SessionFromContext(c)
	if err != nil {
		h.logger.Errorw("session manager missing from request context", "error", err)
		return
	}

	user := loginResp.Data
	if err := manager.Login(c.Request.Context(), user.AccessToken, &user); err != nil {
		h.logger.Errorw("failed to persist session after login", "error", err)
		return
	}

	utils.SetTokenCookie(c, h.cookieConfig, user.AccessToken)
}

// Logout clears the stored session and expires the mirrored token cookie,
// regardless of prior state.
func (h *AuthHandler) Logout(c *gin.Context) {
	manager, err := middleware.SessionFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := manager.Logout(c.Request.Context()); err != nil {
		h.logger.Errorw("logout failed", "error", err)
		utils.ErrorResponseWithError(c, errors.NewInternalError("Failed to clear session"))
		return
	}

	utils.ClearTokenCookie(c, h.cookieConfig)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Session reports the current session state: the dashboard's auth gate.
func (h *AuthHandler) Session(c *gin.Context) {
	manager, err := middleware.SessionFromContext(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": manager.IsAuthenticated(),
		"user":          manager.User(),
	})
}
