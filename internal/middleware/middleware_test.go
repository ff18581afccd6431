package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"user-directory/internal/cache"
	"user-directory/internal/database"
	"user-directory/internal/model"
	"user-directory/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func restoreMiddleware() {
	authenticateToken = service.AuthenticateToken
}

func stubIdentity(id *service.Identity) {
	authenticateToken = func(_ context.Context, _ database.DB, header string) (*service.Identity, error) {
		if id == nil || header == "" {
			return nil, service.ErrUnauthenticated
		}
		return id, nil
	}
}

func TestRequireAuth(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		t.Cleanup(restoreMiddleware)
		stubIdentity(&service.Identity{ID: 2, Username: "admin", Role: model.RoleAdmin})
		ctx, rec := newContext("Bearer sk_admin_xyz789")
		called := false
		handler := RequireAuth(nil)(func(c echo.Context) error {
			called = true
			id := c.Get(ContextIdentityKey).(*service.Identity)
			require.Equal(t, 2, id.ID)
			return c.String(http.StatusOK, "ok")
		})
		require.NoError(t, handler(ctx))
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		t.Cleanup(restoreMiddleware)
		stubIdentity(nil)
		ctx, rec := newContext("")
		called := false
		err := RequireAuth(nil)(func(echo.Context) error { called = true; return nil })(ctx)
		require.NoError(t, err)
		require.False(t, called)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid or missing token")
	})

	t.Run("unknown token answers like missing token", func(t *testing.T) {
		t.Cleanup(restoreMiddleware)
		authenticateToken = func(context.Context, database.DB, string) (*service.Identity, error) {
			return nil, service.ErrUnauthenticated
		}
		ctxBad, recBad := newContext("Bearer sk_bogus")
		require.NoError(t, RequireAuth(nil)(func(echo.Context) error { return nil })(ctxBad))
		ctxNone, recNone := newContext("")
		require.NoError(t, RequireAuth(nil)(func(echo.Context) error { return nil })(ctxNone))
		require.Equal(t, recNone.Code, recBad.Code)
		require.Equal(t, recNone.Body.String(), recBad.Body.String())
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("admin passes", func(t *testing.T) {
		t.Cleanup(restoreMiddleware)
		stubIdentity(&service.Identity{ID: 2, Username: "admin", Role: model.RoleAdmin})
		ctx, rec := newContext("Bearer sk_admin_xyz789")
		called := false
		err := RequireAdmin(nil)(func(c echo.Context) error { called = true; return c.String(http.StatusOK, "admin") })(ctx)
		require.NoError(t, err)
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin forbidden", func(t *testing.T) {
		t.Cleanup(restoreMiddleware)
		stubIdentity(&service.Identity{ID: 1, Username: "john_doe", Role: model.RoleUser})
		ctx, rec := newContext("Bearer sk_test_abc123")
		called := false
		err := RequireAdmin(nil)(func(echo.Context) error { called = true; return nil })(ctx)
		require.NoError(t, err)
		require.False(t, called)
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated before authorization", func(t *testing.T) {
		t.Cleanup(restoreMiddleware)
		stubIdentity(nil)
		ctx, rec := newContext("")
		err := RequireAdmin(nil)(func(echo.Context) error { return nil })(ctx)
		require.NoError(t, err)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("under limit passes", func(t *testing.T) {
		rdb := &cache.FakeCache{
			IncrFn: func(context.Context, string) *redis.IntCmd {
				return redis.NewIntResult(1, nil)
			},
			ExpireFn: func(_ context.Context, _ string, ttl time.Duration) *redis.BoolCmd {
				require.Equal(t, time.Minute, ttl)
				return redis.NewBoolResult(true, nil)
			},
		}
		ctx, rec := newContext("")
		called := false
		err := RateLimit(rdb, 2, time.Minute)(func(c echo.Context) error { called = true; return c.String(http.StatusOK, "ok") })(ctx)
		require.NoError(t, err)
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("over limit rejected", func(t *testing.T) {
		rdb := &cache.FakeCache{
			IncrFn: func(context.Context, string) *redis.IntCmd {
				return redis.NewIntResult(3, nil)
			},
		}
		ctx, rec := newContext("")
		called := false
		err := RateLimit(rdb, 2, time.Minute)(func(echo.Context) error { called = true; return nil })(ctx)
		require.NoError(t, err)
		require.False(t, called)
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
	})

	t.Run("cache failure lets the request through", func(t *testing.T) {
		rdb := &cache.FakeCache{
			IncrFn: func(context.Context, string) *redis.IntCmd {
				return redis.NewIntResult(0, context.DeadlineExceeded)
			},
		}
		ctx, rec := newContext("")
		called := false
		err := RateLimit(rdb, 2, time.Minute)(func(c echo.Context) error { called = true; return c.String(http.StatusOK, "ok") })(ctx)
		require.NoError(t, err)
		require.True(t, called)
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
