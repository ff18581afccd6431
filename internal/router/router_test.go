package router

import (
	"net/http"
	"testing"

	"user-directory/internal/cache"
	"user-directory/internal/database"
	"user-directory/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestSetupRoutes(t *testing.T) {
	e := echo.New()
	wp := worker.NewPool(1)
	defer wp.Stop()
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, wp, 60)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /api/ping",
		http.MethodGet + " /api/users/list",
		http.MethodGet + " /api/users/search",
		http.MethodPost + " /api/users/update",
		http.MethodGet + " /api/users/me",
		http.MethodGet + " /api/users/admin/list",
	}

	require.Equal(t, len(expected), len(got))
	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}
