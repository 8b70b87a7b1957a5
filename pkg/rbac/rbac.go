package rbac

// 权限常量
const (
	// 敏感操作权限
	PermissionManageUsers   = "user:manage"
	PermissionModeratePosts = "post:moderate"
	PermissionViewAllStats  = "stats:view_all"

	// 普通操作权限
	PermissionCreateProject = "project:create"
	PermissionCreateTask    = "task:create"
	PermissionCreatePost    = "post:create"
)

// 角色常量
const (
	RoleUser       = "user"
	RoleAdmin      = "admin"
	RoleSuperadmin = "superadmin"
)

// 角色权限映射
var rolePermissions = map[string][]string{
	RoleUser: {
		PermissionCreateProject,
		PermissionCreateTask,
		PermissionCreatePost,
	},
	RoleAdmin: {
		PermissionCreateProject,
		PermissionCreateTask,
		PermissionCreatePost,
		PermissionManageUsers,
		PermissionModeratePosts,
	},
	RoleSuperadmin: {
		PermissionCreateProject,
		PermissionCreateTask,
		PermissionCreatePost,
		PermissionManageUsers,
		PermissionModeratePosts,
		PermissionViewAllStats,
	},
}

// HasRole 检查角色是否覆盖目标角色（superadmin 覆盖 admin，admin 覆盖 user）
func HasRole(role, required string) bool {
	if role == required {
		return true
	}
	switch required {
	case RoleUser:
		return role == RoleAdmin || role == RoleSuperadmin
	case RoleAdmin:
		return role == RoleSuperadmin
	default:
		return false
	}
}

// HasPermission 检查角色是否有指定权限
func HasPermission(role string, permission string) bool {
	permissions, ok := rolePermissions[role]
	if !ok {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CheckPermission 检查角色是否有指定权限（返回错误而不是布尔值，便于处理）
func CheckPermission(role string, permission string) error {
	if !HasPermission(role, permission) {
		return &PermissionDeniedError{
			Role:       role,
			Permission: permission,
		}
	}
	return nil
}

// PermissionDeniedError 表示权限不足的错误
type PermissionDeniedError struct {
	Role       string
	Permission string
}

func (e *PermissionDeniedError) Error() string {
	return "insufficient permissions"
}
