package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/asadlib11/arbolitics-dashboard/internal/shared/errors"
)

// ErrorBody is the wire shape the dashboard frontend expects on failure.
// The upstream API and the original proxy both use a bare {"error": "..."}
// object, so the proxy keeps that contract instead of a richer envelope.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSONResponse sends data as-is with the given status code
func JSONResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// ErrorResponse sends an {"error": message} body with the given status code
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// ErrorResponseWithError maps an error to the wire shape, using AppError
// status codes when available
func ErrorResponseWithError(c *gin.Context, err error) {
	if appErr := errors.GetAppError(err); appErr != nil {
		ErrorResponse(c, appErr.Code, appErr.Message)
		return
	}
	ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
}
