package middleware

import (
	"fmt"
	"net/http"
	"time"

	"user-directory/internal/api"
	"user-directory/internal/cache"
	"user-directory/internal/database"
	"user-directory/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextIdentityKey = "identity"

var authenticateToken = service.AuthenticateToken

// RequireAuth resolves the bearer token into an Identity and stores it in the
// request context. Missing, malformed and unknown tokens all answer the same
// 401 so a caller cannot probe which case it hit.
func RequireAuth(db database.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := authenticateToken(c.Request().Context(), db, c.Request().Header.Get("Authorization"))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or missing token"})
			}
			c.Set(ContextIdentityKey, identity)
			return next(c)
		}
	}
}

// RequireAdmin authenticates and then applies the AdminOnly policy.
func RequireAdmin(db database.DB) echo.MiddlewareFunc {
	requireAuth := RequireAuth(db)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return requireAuth(func(c echo.Context) error {
			identity := c.Get(ContextIdentityKey).(*service.Identity)
			if !service.AdminOnly()(*identity) {
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "admin access required"})
			}
			return next(c)
		})
	}
}

// RateLimit 以 Redis INCR/EXPIRE 實作固定時間窗限流，key 為來源 IP。
// 快取故障時放行，限流不該成為服務的單點。
func RateLimit(rdb cache.Cache, limit int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s", c.RealIP())

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				c.Logger().Errorf("rate limit unavailable: %v", err)
				return next(c)
			}
			if n == 1 {
				if err := rdb.Expire(ctx, key, window).Err(); err != nil {
					c.Logger().Errorf("rate limit expire failed: %v", err)
				}
			}
			if n > limit {
				return c.JSON(http.StatusTooManyRequests, api.ErrorResponse{Error: "too many requests"})
			}
			return next(c)
		}
	}
}
