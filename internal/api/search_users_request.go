package api

// swagger:model api.SearchUsersRequest
type SearchUsersRequest struct {
	Username string `query:"username" validate:"required" example:"john_doe"`
}
