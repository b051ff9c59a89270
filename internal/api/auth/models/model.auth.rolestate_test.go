// Package authmodels - Test dựng RoleState từ custom claims.
package authmodels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildRoleState_OnlyBoolTrueGrants(t *testing.T) {
	rs := BuildRoleState("uid1", "a@b.c", map[string]interface{}{
		"admin":       true,
		"operational": "true", // chuỗi không cấp quyền
	})

	assert.True(t, rs.IsAdmin())
	assert.False(t, rs.IsOperational, "claim kiểu chuỗi không được cấp vai trò")
	assert.True(t, rs.CanAccessPortal())
	assert.True(t, rs.CanReview())
}

func TestBuildRoleState_NonBoolClaims(t *testing.T) {
	cases := []interface{}{false, "yes", 1, 1.0, nil, map[string]interface{}{}}
	for _, v := range cases {
		rs := BuildRoleState("uid1", "a@b.c", map[string]interface{}{"admin": v, "operational": v})
		assert.False(t, rs.CanAccessPortal(), "claim %v không được cấp quyền portal", v)
		assert.False(t, rs.CanReview())
	}
}

func TestRoleState_OperationalCannotReview(t *testing.T) {
	rs := BuildRoleState("uid2", "op@b.c", map[string]interface{}{"operational": true})

	assert.True(t, rs.CanAccessPortal())
	assert.False(t, rs.CanReview(), "operational không có quyền duyệt")
	assert.True(t, rs.HasRole(RoleOperational))
	assert.False(t, rs.HasRole(RoleAdmin))
	assert.True(t, rs.HasAnyRole(RoleAdmin, RoleOperational))
}

func TestHasRole_ConsultsClaimsForUnknownRoles(t *testing.T) {
	rs := BuildRoleState("uid4", "e@b.c", map[string]interface{}{
		"editor":    true,
		"moderator": "true", // chuỗi không được tính
		"viewer":    false,
	})

	assert.True(t, rs.HasRole("editor"), "claim bool true ngoài admin/operational vẫn cấp vai trò")
	assert.False(t, rs.HasRole("moderator"))
	assert.False(t, rs.HasRole("viewer"))
	assert.False(t, rs.HasRole("unknown"))
	assert.True(t, rs.HasAnyRole("viewer", "editor"))
}

func TestBuildRoleState_NilClaims(t *testing.T) {
	rs := BuildRoleState("uid3", "none@b.c", nil)
	assert.False(t, rs.CanAccessPortal())
	assert.Equal(t, "uid3", rs.UID)
	assert.Equal(t, "none@b.c", rs.Email)
}
