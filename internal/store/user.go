// Package store defines every data operation as a fixed statement with
// positional parameter slots. Caller input is only ever bound as a value,
// never spliced into SQL text, and each read selects a fixed column set:
// password_hash and api_key are not part of any response-producing query.
package store

import (
	"context"
	"fmt"

	"user-directory/internal/database"
	"user-directory/internal/model"
)

// GetUserByAPIKey 以 API key 查詢使用者，僅回傳身分欄位 (id, username, role)。
func GetUserByAPIKey(ctx context.Context, db database.DB, apiKey string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, username, role
		 FROM users WHERE api_key = $1`,
		apiKey,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Role,
	); err != nil {
		return nil, fmt.Errorf("GetUserByAPIKey: %w", err)
	}
	return u, nil
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, username, email, role, created_at
		 FROM users WHERE id = $1`,
		userID,
	)
	u := &model.User{}
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Role,
		&u.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

// SearchUsersByUsername 以 username 精確比對查詢，投影不含敏感欄位。
func SearchUsersByUsername(ctx context.Context, db database.DB, username string) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT id, username, email, role, created_at
		 FROM users WHERE username = $1`,
		username,
	)
	if err != nil {
		return nil, fmt.Errorf("SearchUsersByUsername: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.Role,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("SearchUsersByUsername: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SearchUsersByUsername: %w", err)
	}
	return users, nil
}

// ListUsers 管理員投影：含 email。
func ListUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT id, username, email, role, created_at
		 FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Email,
			&u.Role,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListUsers: %w", err)
	}
	return users, nil
}

// ListPublicUsers 公開投影：不含 email。
func ListPublicUsers(ctx context.Context, db database.DB) ([]model.User, error) {
	rows, err := db.Query(ctx,
		`SELECT id, username, role, created_at
		 FROM users ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListPublicUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Role,
			&u.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListPublicUsers: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListPublicUsers: %w", err)
	}
	return users, nil
}

// UpdateUserEmail 更新 email，回傳實際變更的列數。
// IS DISTINCT FROM 讓相同值的重複更新回報 0 列變更。
func UpdateUserEmail(ctx context.Context, db database.DB, userID int, email string) (int64, error) {
	tag, err := db.Exec(ctx,
		`UPDATE users SET email = $1
		 WHERE id = $2 AND email IS DISTINCT FROM $1`,
		email,
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("UpdateUserEmail: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CreateUser 新增使用者（僅供佈建工具使用，核心服務不建立帳號）。
func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (username, email, password_hash, role, api_key)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		u.Username,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.APIKey,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}
