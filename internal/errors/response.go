package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error   string `json:"error"`   // stable code for frontend mapping
	Message string `json:"message"` // human readable message
}

// HTTPStatus maps a failure kind to its HTTP status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON error response, choosing the status from its kind.
func Respond(c *gin.Context, err error) {
	c.JSON(HTTPStatus(KindOf(err)), ErrorResponse{
		Error:   CodeOf(err),
		Message: publicMessage(err),
	})
}

// RespondWithError writes an explicit status/code/message triple.
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// publicMessage strips the wrapped cause so raw storage messages never leak.
func publicMessage(err error) string {
	var appErr *Error
	if As(err, &appErr) {
		return appErr.Message
	}
	return "unexpected server error, please retry later"
}

// Shortcut responses used by middleware.

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "login required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "access denied"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "unexpected server error, please retry later"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
