package authmodels

// Các vai trò portal được cấp qua custom claims của identity provider.
const (
	RoleAdmin       = "admin"
	RoleOperational = "operational"
)

// RoleState là trạng thái vai trò của một người dùng, dựng từ custom claims đã xác thực.
// Vai trò chỉ được cấp khi claim có giá trị bool true; mọi giá trị khác đều bị bỏ qua.
type RoleState struct {
	UID           string                 `json:"uid"`
	Email         string                 `json:"email"`
	IsAdminRole   bool                   `json:"isAdmin"`
	IsOperational bool                   `json:"isOperational"`
	Claims        map[string]interface{} `json:"claims,omitempty"`
}

// BuildRoleState dựng RoleState từ claims đã xác thực.
// Chỉ giá trị bool true mới cấp vai trò; "true" (string), 1 (number) đều không.
func BuildRoleState(uid, email string, claims map[string]interface{}) RoleState {
	rs := RoleState{
		UID:    uid,
		Email:  email,
		Claims: claims,
	}
	if v, ok := claims[RoleAdmin].(bool); ok && v {
		rs.IsAdminRole = true
	}
	if v, ok := claims[RoleOperational].(bool); ok && v {
		rs.IsOperational = true
	}
	return rs
}

// HasRole kiểm tra người dùng có vai trò cụ thể không.
// Vai trò ngoài admin/operational được tra trực tiếp trong claims,
// vẫn theo quy tắc chỉ bool true mới được tính.
func (rs RoleState) HasRole(role string) bool {
	switch role {
	case RoleAdmin:
		return rs.IsAdminRole
	case RoleOperational:
		return rs.IsOperational
	default:
		v, ok := rs.Claims[role].(bool)
		return ok && v
	}
}

// HasAnyRole kiểm tra người dùng có ít nhất một trong các vai trò không
func (rs RoleState) HasAnyRole(roles ...string) bool {
	for _, role := range roles {
		if rs.HasRole(role) {
			return true
		}
	}
	return false
}

// IsAdmin kiểm tra vai trò admin
func (rs RoleState) IsAdmin() bool {
	return rs.IsAdminRole
}

// CanAccessPortal kiểm tra quyền truy cập portal (admin hoặc operational)
func (rs RoleState) CanAccessPortal() bool {
	return rs.IsAdminRole || rs.IsOperational
}

// CanReview kiểm tra quyền duyệt batch (chỉ admin)
func (rs RoleState) CanReview() bool {
	return rs.IsAdminRole
}
