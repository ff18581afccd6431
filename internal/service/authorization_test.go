package service

import (
	"testing"

	"user-directory/internal/model"

	"github.com/stretchr/testify/require"
)

func TestAdminOnly(t *testing.T) {
	require.True(t, AdminOnly()(Identity{ID: 2, Role: model.RoleAdmin}))
	require.False(t, AdminOnly()(Identity{ID: 1, Role: model.RoleUser}))
	// 角色必須完全相符，空值不等於 admin
	require.False(t, AdminOnly()(Identity{ID: 3}))
}

func TestSelfOrAdmin(t *testing.T) {
	user := Identity{ID: 1, Role: model.RoleUser}
	admin := Identity{ID: 2, Role: model.RoleAdmin}

	require.True(t, SelfOrAdmin(1)(user))
	require.False(t, SelfOrAdmin(2)(user))
	require.True(t, SelfOrAdmin(1)(admin))
	require.True(t, SelfOrAdmin(2)(admin))
}
