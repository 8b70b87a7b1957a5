package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhub/internal/model"
	"taskhub/pkg/rbac"
)

func TestListPostsStatusFilterRequiresModerationPermission(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// A regular user asking for the moderation queue must be refused
	// before any data is read.
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/posts?status=flagged", nil)
	c.Set(ContextUserKey, &model.User{ID: 2, Role: rbac.RoleUser, Status: model.UserStatusActive})

	h := NewPostHandler(nil, zap.NewNop())
	h.ListPosts(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}
