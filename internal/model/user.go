// File: internal/model/user.go
package model

import "time"

// Role 使用者角色
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User 對應 users 資料表的一列。
// PasswordHash 與 APIKey 永遠不得出現在任何序列化回應中。
type User struct {
	ID           int       `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	APIKey       string    `db:"api_key" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
