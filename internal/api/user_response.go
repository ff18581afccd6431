package api

import (
	"time"

	"user-directory/internal/model"
)

// UserResponse 完整的使用者投影（不含 password_hash 與 api_key）
// swagger:model api.UserResponse
type UserResponse struct {
	ID        int        `json:"id" example:"1"`
	Username  string     `json:"username" example:"john_doe"`
	Email     string     `json:"email" example:"john@example.com"`
	Role      model.Role `json:"role" example:"user"`
	CreatedAt time.Time  `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// PublicUserResponse 公開清單投影（不含 email）
// swagger:model api.PublicUserResponse
type PublicUserResponse struct {
	ID        int        `json:"id" example:"1"`
	Username  string     `json:"username" example:"john_doe"`
	Role      model.Role `json:"role" example:"user"`
	CreatedAt time.Time  `json:"created_at" example:"2025-05-01T15:04:05Z"`
}

// NewUserResponse 將 model.User 投影為 UserResponse
func NewUserResponse(u model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// NewPublicUserResponse 將 model.User 投影為 PublicUserResponse
func NewPublicUserResponse(u model.User) PublicUserResponse {
	return PublicUserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
