// internal/api/handlers/user_handler.go
package handlers

import (
	"net/http"

	"coffee-scm-api-server/internal/models"
	"coffee-scm-api-server/internal/store"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	Store store.Storage
}

type CreateUserPayload struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Role          string `json:"role" binding:"required"`
	CooperativeID string `json:"cooperativeID"`
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var payload CreateUserPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidUserRole(payload.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	user := models.User{
		Name:          payload.Name,
		Email:         payload.Email,
		Phone:         payload.Phone,
		Role:          payload.Role,
		CooperativeID: payload.CooperativeID,
		IsActive:      true,
	}
	if err := h.Store.CreateUser(c.Request.Context(), &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// GetUsersByRole lists users holding the given supply-chain role.
func (h *UserHandler) GetUsersByRole(c *gin.Context) {
	role := c.Param("role")
	if !models.ValidUserRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	users, err := h.Store.GetUsersByRole(c.Request.Context(), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to query users"})
		return
	}

	c.JSON(http.StatusOK, users)
}
