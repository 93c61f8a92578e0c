package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/questline-studio/agency-site/pkg/middleware"
	"github.com/questline-studio/agency-site/pkg/models"
	"github.com/questline-studio/agency-site/pkg/services"
)

// AppDetailsCacheControl lets shared caches keep app metadata for an hour and
// serve it stale for a day while they revalidate in the background.
const AppDetailsCacheControl = "public, s-maxage=3600, stale-while-revalidate=86400"

const unknownErrorMessage = "Unknown error"

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	leadService       services.LeadNotificationService
	appDetailsService services.AppDetailsService
}

// NewHandlers creates a new Handlers instance
func NewHandlers(leadService services.LeadNotificationService, appDetailsService services.AppDetailsService) *Handlers {
	return &Handlers{
		leadService:       leadService,
		appDetailsService: appDetailsService,
	}
}

// HealthCheck handler for monitoring
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// HandleLeadSubmission forwards a contact form submission to the operators' chat
func (h *Handlers) HandleLeadSubmission(c *gin.Context) {
	var lead models.LeadFormData

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Error reading request"})
		return
	}

	if err := json.Unmarshal(body, &lead); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format"})
		return
	}

	err = h.leadService.NotifyLead(c.Request.Context(), lead)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"success": true})
	case errors.Is(err, services.ErrInvalidLead):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and email are required"})
	case errors.Is(err, services.ErrNotConfigured):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server configuration error"})
	case errors.Is(err, services.ErrDeliveryFailed):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send message"})
	default:
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"error":      err.Error(),
		}).Error("Unexpected error handling lead submission")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// HandleAppDetails returns the Steam store metadata for the appid query parameter
func (h *Handlers) HandleAppDetails(c *gin.Context) {
	data, err := h.appDetailsService.AppDetails(c.Request.Context(), c.Query("appid"))
	switch {
	case err == nil:
		c.Header("Cache-Control", AppDetailsCacheControl)
		c.JSON(http.StatusOK, gin.H{"data": data})
	case errors.Is(err, services.ErrInvalidAppID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing appid"})
	case errors.Is(err, services.ErrAppNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "App not found"})
	case errors.Is(err, services.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch app details"})
	default:
		message := err.Error()
		if message == "" {
			message = unknownErrorMessage
		}
		logrus.WithFields(logrus.Fields{
			"request_id": c.GetString(middleware.RequestIDKey),
			"error":      message,
		}).Error("Error fetching app details")
		c.JSON(http.StatusInternalServerError, gin.H{"error": message})
	}
}
