package handlers

import (
	"net/http"

	"agencyportal/internal/domain"
	"agencyportal/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      message,
			"code":       code,
			"request_id": reqID,
		})
		return
	}
	c.JSON(status, ErrorResponse{Error: message, Code: code})
}

// RespondDomainError maps domain errors to HTTP responses. Internal
// failures are logged upstream and surfaced as a generic message.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsUnauthenticated(err):
		respondError(c, http.StatusUnauthorized, "unauthenticated", err.Error())
	case domain.IsAuthorization(err):
		respondError(c, http.StatusForbidden, "forbidden", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
