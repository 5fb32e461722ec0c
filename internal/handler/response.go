package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fileupload/internal/domain"
	"fileupload/internal/middleware"
)

// ErrorResponse is the body of every JSON error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// UploadResponse is the body of a successful upload.
type UploadResponse struct {
	URL string `json:"url"`
}

// StatusResponse is the body of the health endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

// Client-facing messages.
const (
	MsgUnauthorized     = "Unauthorized"
	MsgEmptyBody        = "Request body is empty"
	MsgNoFileUploaded   = "No file uploaded"
	MsgUploadFailed     = "Upload to S3 failed"
	MsgProcessingFailed = "Failed to process request"
)

// RespondError sends a JSON error response with the given status code.
func RespondError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}

// MapDomainError translates domain errors to HTTP status codes and client
// messages. Validation errors carry their own joined message.
func MapDomainError(err error) (status int, msg string) {
	var vErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, MsgUnauthorized
	case errors.Is(err, domain.ErrEmptyBody):
		return http.StatusBadRequest, MsgEmptyBody
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, MsgNoFileUploaded
	case errors.As(err, &vErr):
		return http.StatusBadRequest, vErr.Error()
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, MsgUploadFailed
	default:
		return http.StatusInternalServerError, MsgProcessingFailed
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// The empty-body case is answered in plain text.
func HandleError(c *gin.Context, err error) {
	status, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get(middleware.ContextKeyRequestID)
		log.Printf("[%s] request failed: %v", requestID, err)
	}
	if errors.Is(err, domain.ErrEmptyBody) {
		c.String(status, msg)
		return
	}
	RespondError(c, status, msg)
}
