// File: internal/service/authorization.go
package service

import "user-directory/internal/model"

// Policy 對已驗證身分做出允許/拒絕的授權決策。
type Policy func(id Identity) bool

// AdminOnly 僅允許 admin 角色。
func AdminOnly() Policy {
	return func(id Identity) bool {
		return id.Role == model.RoleAdmin
	}
}

// SelfOrAdmin 允許本人或 admin 角色。
func SelfOrAdmin(targetID int) Policy {
	return func(id Identity) bool {
		return id.ID == targetID || id.Role == model.RoleAdmin
	}
}
