package handlers

import (
	"net/http"

	"carebook/internal/models"

	"github.com/gin-gonic/gin"
)

// Users handlers

// GetUserRole - GET /api/users/role
// Role lookup used by the storefront to toggle admin UI
func (h *Handlers) GetUserRole(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	role, err := h.services.Users.GetRole(c.Request.Context(), email)
	if err != nil {
		respondError(c, err, "Failed to get user role")
		return
	}

	c.JSON(http.StatusOK, models.UserRoleResponse{Role: role})
}

// PromoteUser - POST /api/admin/promote
// Grant the admin role to an existing user (admin only)
func (h *Handlers) PromoteUser(c *gin.Context) {
	var req models.PromoteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.services.Users.Promote(c.Request.Context(), req.Email); err != nil {
		respondError(c, err, "Failed to promote user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User promoted to admin"})
}
