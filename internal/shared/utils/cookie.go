package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asadlib11/arbolitics-dashboard/internal/shared/config"
)

const (
	// TokenCookie mirrors the session token for the browser, matching the
	// localStorage entry the SPA keeps alongside it.
	TokenCookie = "token"
)

// SetTokenCookie mirrors the session token into a path-scoped cookie.
// MaxAge 0 means no Expires attribute: the cookie lives until the browser
// clears it or logout expires it.
func SetTokenCookie(c *gin.Context, cookieConfig config.CookieConfig, token string) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		TokenCookie,
		token,
		0,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		false, // readable by the frontend, as the original dashboard expects
	)
}

// ClearTokenCookie expires the token cookie immediately
func ClearTokenCookie(c *gin.Context, cookieConfig config.CookieConfig) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		TokenCookie,
		"",
		-1,
		cookieConfig.Path,
		cookieConfig.Domain,
		cookieConfig.Secure,
		false,
	)
}

// GetTokenFromCookie retrieves the mirrored token, or "" when absent
func GetTokenFromCookie(c *gin.Context) string {
	token, err := c.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return token
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "Lax":
		return http.SameSiteLaxMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
