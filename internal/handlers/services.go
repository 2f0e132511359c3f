package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"carebook/internal/models"

	"github.com/gin-gonic/gin"
)

// Services (catalog) handlers

// CreateService - POST /api/services
// Add a catalog listing (admin only, enforced by middleware)
func (h *Handlers) CreateService(c *gin.Context) {
	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	service, err := h.services.Catalog.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create service")
		return
	}

	// A new listing invalidates every cached catalog page
	if h.valkeyClient != nil {
		if err := h.valkeyClient.InvalidateServicesList(c.Request.Context()); err != nil {
			slog.Error("Failed to invalidate services cache", "error", err)
		}
	}

	c.JSON(http.StatusCreated, service)
}

// ListServices - GET /api/services
// Public catalog listing with optional query/category filters
func (h *Handlers) ListServices(c *gin.Context) {
	query := c.Query("query")
	category := c.Query("category")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "12"))

	if page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be >= 1"})
		return
	}
	if pageSize < 1 || pageSize > 50 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageSize must be between 1 and 50"})
		return
	}

	// Only the unfiltered first page is cached; searches always hit the index
	shouldCache := query == "" && page == 1 && h.valkeyClient != nil

	if shouldCache {
		rawJSON, err := h.valkeyClient.GetServicesListRaw(c.Request.Context(), category, pageSize)
		if err == nil {
			c.Data(http.StatusOK, "application/json", rawJSON)
			return
		}
	}

	response, err := h.services.Catalog.List(c.Request.Context(), query, category, page, pageSize)
	if err != nil {
		respondError(c, err, "Failed to list services")
		return
	}

	if shouldCache {
		if err := h.valkeyClient.SetServicesList(c.Request.Context(), category, pageSize, response); err != nil {
			slog.Error("Failed to cache services list", "error", err)
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetService - GET /api/services/:id
// Fetch one catalog listing
func (h *Handlers) GetService(c *gin.Context) {
	service, err := h.services.Catalog.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get service")
		return
	}

	c.JSON(http.StatusOK, service)
}
