package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"fileupload/internal/service"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	uploadService service.UploadService
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(uploadService service.UploadService) *HealthHandler {
	return &HealthHandler{uploadService: uploadService}
}

// Liveness handles GET /healthz
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}

// Readiness handles GET /readyz
func (h *HealthHandler) Readiness(c *gin.Context) {
	if err := h.uploadService.Ready(c.Request.Context()); err != nil {
		log.Printf("healthHandler.Readiness: %v", err)
		c.JSON(http.StatusServiceUnavailable, StatusResponse{Status: "unavailable"})
		return
	}
	c.JSON(http.StatusOK, StatusResponse{Status: "ok"})
}
