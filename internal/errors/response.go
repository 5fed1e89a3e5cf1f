package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the standard error payload
type ErrorResponse struct {
	Error   string `json:"error"`   // code constant, for frontend mapping
	Message string `json:"message"` // human-readable
}

// RespondWithError writes an error payload with an explicit status code
func RespondWithError(c *gin.Context, statusCode int, errorCode string, message string) {
	c.JSON(statusCode, ErrorResponse{
		Error:   errorCode,
		Message: message,
	})
}

// Respond maps a taxonomy error to its HTTP status. Unclassified errors are
// reported as internal server errors without leaking the cause.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		RespondWithError(c, http.StatusInternalServerError, InternalServerError, "internal server error")
		return
	}

	// Ownership failures carry authz codes and map to 403 regardless of kind.
	if e.Code == AuthzForbidden || e.Code == AuthzOwnerOnly {
		RespondWithError(c, http.StatusForbidden, e.Code, e.Message)
		return
	}

	status := http.StatusInternalServerError
	switch e.Kind {
	case KindValidation:
		status = http.StatusBadRequest
	case KindConflict:
		status = http.StatusConflict
	case KindNotFound:
		status = http.StatusNotFound
	case KindTransient:
		// the whole operation is safe to retry
		status = http.StatusServiceUnavailable
	}

	RespondWithError(c, status, e.Code, e.Message)
}

// Shorthand responses used by middleware and controllers

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, AuthUnauthorized, message)
}

func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "access denied"
	}
	RespondWithError(c, http.StatusForbidden, AuthzForbidden, message)
}

func BadRequest(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusBadRequest, errorCode, message)
}

func NotFoundResponse(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusNotFound, errorCode, message)
}

func ConflictResponse(c *gin.Context, errorCode string, message string) {
	RespondWithError(c, http.StatusConflict, errorCode, message)
}

func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, InternalServerError, message)
}
