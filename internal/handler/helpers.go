package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/model"
	"taskhub/internal/service"
)

// Gin context keys set by the auth middleware and read by the handlers.
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "user"
)

// statusFromError maps service error kinds onto HTTP statuses.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, service.ErrAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// currentUser reads the authenticated user set by the auth middleware.
func currentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ContextUserKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}
