package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub/internal/model"
	"taskhub/internal/repository"
)

// UserHandler exposes the admin user management endpoints. Routes are
// guarded by the user:manage permission in the router.
type UserHandler struct {
	users  *repository.UserRepository
	logger *zap.Logger
}

func NewUserHandler(users *repository.UserRepository, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		h.logger.Error("ListUsers failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

type updateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *UserHandler) UpdateUserStatus(c *gin.Context) {
	admin := currentUser(c)

	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req updateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Status {
	case model.UserStatusActive, model.UserStatusSuspended, model.UserStatusInactive:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status"})
		return
	}

	if userID == admin.ID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot change own status"})
		return
	}

	if err := h.users.UpdateStatus(c.Request.Context(), userID, req.Status); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	h.logger.Info("User status updated",
		zap.Int("user_id", userID),
		zap.String("status", req.Status),
		zap.Int("admin_id", admin.ID),
	)
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
