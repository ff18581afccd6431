// File: internal/service/authentication.go
package service

import (
	"context"
	"errors"
	"strings"

	"user-directory/internal/database"
	"user-directory/internal/model"
	"user-directory/internal/store"
)

// ErrUnauthenticated covers every failed authentication: missing header,
// malformed header, unknown token. Callers must not learn which case occurred.
var ErrUnauthenticated = errors.New("invalid or missing token")

// Identity 已驗證的請求身分。刻意不含 password_hash 與 api_key，
// 下游 handler 拿不到就不可能外洩。
type Identity struct {
	ID       int
	Username string
	Role     model.Role
}

var getUserByAPIKey = store.GetUserByAPIKey

// AuthenticateToken resolves a raw Authorization header value into a verified
// Identity. Only the `Bearer <token>` scheme is accepted; the token is an
// opaque key compared for equality against users.api_key. Role is read from
// the store on every call, never from the credential itself.
func AuthenticateToken(ctx context.Context, db database.DB, authHeader string) (*Identity, error) {
	if authHeader == "" {
		return nil, ErrUnauthenticated
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return nil, ErrUnauthenticated
	}

	user, err := getUserByAPIKey(ctx, db, parts[1])
	if err != nil {
		return nil, ErrUnauthenticated
	}

	return &Identity{
		ID:       user.ID,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}
