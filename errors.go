package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the envelope every failing endpoint returns. No internal
// error or stack trace ever reaches the caller directly; Details carries an
// optional sanitized hint.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Helper functions for consistent error responses
func RespondWithError(c *gin.Context, statusCode int, message, details string) {
	c.JSON(statusCode, ErrorResponse{
		Success: false,
		Error:   message,
		Details: details,
	})
}

// RespondBadRequest reports malformed or missing input (ValidationError):
// the caller must correct the request before retrying.
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, message, "")
}

// RespondNotFound reports a missing record or file (NotFoundError).
func RespondNotFound(c *gin.Context, message string) {
	RespondWithError(c, http.StatusNotFound, message, "")
}

// RespondUnauthorized reports a missing or invalid session (AuthError).
func RespondUnauthorized(c *gin.Context, message string) {
	RespondWithError(c, http.StatusUnauthorized, message, "")
}

// RespondForbidden reports a valid session lacking rights.
func RespondForbidden(c *gin.Context, message string) {
	RespondWithError(c, http.StatusForbidden, message, "")
}

// RespondStorageError reports a file or database I/O failure (StorageError);
// the caller may retry later. The underlying error goes into details.
func RespondStorageError(c *gin.Context, message string, err error) {
	details := ""
	if err != nil {
		details = err.Error()
	}
	RespondWithError(c, http.StatusInternalServerError, message, details)
}

// RespondInternalError reports an unexpected failure with no extra detail.
func RespondInternalError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, message, "")
}
