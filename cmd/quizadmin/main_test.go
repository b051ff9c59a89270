package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidRole(t *testing.T) {
	assert.True(t, validRole("admin"))
	assert.True(t, validRole("operational"))
	assert.False(t, validRole("root"))
	assert.False(t, validRole(""))
	assert.False(t, validRole("Admin"), "tên vai trò phân biệt hoa thường")
}

func TestUserRoles_OnlyBoolTrueCounts(t *testing.T) {
	roles := userRoles(map[string]interface{}{
		"admin":       true,
		"operational": "true",
		"other":       true,
	})
	assert.Equal(t, []string{"admin"}, roles)

	assert.Empty(t, userRoles(nil))
	assert.Empty(t, userRoles(map[string]interface{}{"admin": false}))

	both := userRoles(map[string]interface{}{"admin": true, "operational": true})
	assert.Equal(t, []string{"admin", "operational"}, both)
}
