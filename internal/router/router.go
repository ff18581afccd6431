// File: internal/router/router.go
package router

import (
	"time"

	"github.com/labstack/echo/v4"

	"user-directory/internal/cache"
	"user-directory/internal/database"
	"user-directory/internal/handler"
	"user-directory/internal/handler/users"
	"user-directory/internal/middleware"
	"user-directory/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool, rateLimit int64) {
	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db), middleware.RequireAuth(db))

	apiUsers := api.Group("/users")

	// 公開清單：無認證，僅限流
	apiUsers.GET("/list", users.ListPublicUsersHandler(db), middleware.RateLimit(rdb, rateLimit, time.Minute))

	// 需認證的端點
	apiUsers.GET("/search", users.SearchUsersHandler(db), middleware.RequireAuth(db))
	apiUsers.POST("/update", users.UpdateEmailHandler(db, wp), middleware.RequireAuth(db))
	apiUsers.GET("/me", users.GetMyUserHandler(db), middleware.RequireAuth(db))

	// 管理員專屬
	apiUsers.GET("/admin/list", users.ListUsersHandler(db), middleware.RequireAdmin(db))
}
