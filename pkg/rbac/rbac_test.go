package rbac

import (
	"errors"
	"testing"
)

func TestHasRole(t *testing.T) {
	tests := []struct {
		role     string
		required string
		want     bool
	}{
		{RoleUser, RoleUser, true},
		{RoleAdmin, RoleUser, true},
		{RoleSuperadmin, RoleUser, true},
		{RoleUser, RoleAdmin, false},
		{RoleAdmin, RoleAdmin, true},
		{RoleSuperadmin, RoleAdmin, true},
		{RoleAdmin, RoleSuperadmin, false},
		{"unknown", RoleUser, false},
	}

	for _, tt := range tests {
		if got := HasRole(tt.role, tt.required); got != tt.want {
			t.Errorf("HasRole(%q, %q) = %v, want %v", tt.role, tt.required, got, tt.want)
		}
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		role       string
		permission string
		want       bool
	}{
		{RoleUser, PermissionCreateTask, true},
		{RoleUser, PermissionManageUsers, false},
		{RoleUser, PermissionModeratePosts, false},
		{RoleAdmin, PermissionManageUsers, true},
		{RoleAdmin, PermissionModeratePosts, true},
		{RoleAdmin, PermissionViewAllStats, false},
		{RoleSuperadmin, PermissionViewAllStats, true},
		{"unknown", PermissionCreateTask, false},
	}

	for _, tt := range tests {
		if got := HasPermission(tt.role, tt.permission); got != tt.want {
			t.Errorf("HasPermission(%q, %q) = %v, want %v", tt.role, tt.permission, got, tt.want)
		}
	}
}

func TestCheckPermissionDenied(t *testing.T) {
	err := CheckPermission(RoleUser, PermissionManageUsers)
	if err == nil {
		t.Fatal("expected error for user without permission")
	}

	var denied *PermissionDeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("error type = %T, want *PermissionDeniedError", err)
	}
	if denied.Role != RoleUser || denied.Permission != PermissionManageUsers {
		t.Fatalf("error fields = %+v", denied)
	}
}
