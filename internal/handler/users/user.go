package users

import (
	"context"
	"net/http"
	"net/mail"
	"strings"

	"user-directory/internal/api"
	"user-directory/internal/database"
	"user-directory/internal/middleware"
	"user-directory/internal/service"
	"user-directory/internal/store"
	"user-directory/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	searchUsersByUsername = store.SearchUsersByUsername
	listUsers             = store.ListUsers
	listPublicUsers       = store.ListPublicUsers
	updateUserEmail       = store.UpdateUserEmail
	getUserByID           = store.GetUserByID
	insertAuditEvent      = store.InsertAuditEvent
)

func identityFrom(c echo.Context) (*service.Identity, bool) {
	identity, ok := c.Get(middleware.ContextIdentityKey).(*service.Identity)
	return identity, ok && identity != nil
}

// @Summary     Search users by username
// @Description 以 username 精確比對搜尋使用者，回應不含敏感欄位
// @Tags        users
// @Produce     json
// @Param       username query string true "使用者名稱（精確比對）"
// @Success     200 {array}  api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/search [get]
func SearchUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.SearchUsersRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "username parameter required"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "username parameter required"})
		}

		users, err := searchUsersByUsername(c.Request().Context(), db, req.Username)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "query failed"})
		}

		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Update a user's email
// @Description 本人或管理員可更新 email；重複寫入相同值回報 changes 0
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body api.UpdateEmailRequest true "目標使用者與新 email"
// @Success     200 {object} api.UpdateEmailResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/update [post]
func UpdateEmailHandler(db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := identityFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or missing token"})
		}

		var req api.UpdateEmailRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		}

		// Authorization before input validation: a caller who may not touch
		// the target row learns nothing about what a valid body looks like.
		if !service.SelfOrAdmin(req.UserID)(*identity) {
			return c.JSON(http.StatusForbidden, api.ErrorResponse{Error: "can only update own profile"})
		}

		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "valid email required"})
		}
		req.Email = strings.ToLower(req.Email)
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "valid email required"})
		}

		changes, err := updateUserEmail(c.Request().Context(), db, req.UserID, req.Email)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "update failed"})
		}

		// 稽核寫入走 worker pool，不佔用請求路徑。
		actorID, targetID := identity.ID, req.UserID
		logger := c.Logger()
		wp.Submit(func() {
			if err := insertAuditEvent(context.Background(), db, actorID, "update_email", targetID); err != nil {
				logger.Error(err)
			}
		})

		return c.JSON(http.StatusOK, api.UpdateEmailResponse{Success: true, Changes: changes})
	}
}

// @Summary     List all users (admin)
// @Description 管理員清單，含 email，不含敏感欄位
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/admin/list [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "query failed"})
		}
		resp := make([]api.UserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.NewUserResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     List all users (public)
// @Description 公開清單，僅含 id、username、role、created_at
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.PublicUserResponse
// @Failure     429 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/list [get]
func ListPublicUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listPublicUsers(c.Request().Context(), db)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "query failed"})
		}
		resp := make([]api.PublicUserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, api.NewPublicUserResponse(u))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get current user info
// @Description 取得當前使用者詳細資訊
// @Tags        users
// @Produce     json
// @Success     200 {object} api.UserResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/me [get]
func GetMyUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity, ok := identityFrom(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid or missing token"})
		}
		user, err := getUserByID(c.Request().Context(), db, identity.ID)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "query failed"})
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(*user))
	}
}
