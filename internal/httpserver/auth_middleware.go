package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub/internal/handler"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/util"
)

// RequireAuth validates the bearer token, loads the account and refuses
// anything but an active user.
func RequireAuth(userRepo *repository.UserRepository, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := util.ExtractToken(c.Request)
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}

		userID, err := util.ParseJWT(tokenStr, jwtSecret)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		u, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			c.Abort()
			return
		}
		if u.Status != model.UserStatusActive {
			c.JSON(http.StatusForbidden, gin.H{"error": "account is not active"})
			c.Abort()
			return
		}

		c.Set(handler.ContextUserIDKey, u.ID)
		c.Set(handler.ContextUserKey, u)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the gin context.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(handler.ContextUserKey); ok {
		if u, ok := v.(*model.User); ok {
			return u
		}
	}
	return nil
}
