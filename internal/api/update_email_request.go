package api

// swagger:model api.UpdateEmailRequest
type UpdateEmailRequest struct {
	UserID int    `json:"userId" validate:"required" example:"1"`
	Email  string `json:"email" validate:"required,email" example:"john@example.com"`
}

// UpdateEmailResponse 更新結果，Changes 為實際變更的列數
// swagger:model api.UpdateEmailResponse
type UpdateEmailResponse struct {
	Success bool  `json:"success" example:"true"`
	Changes int64 `json:"changes" example:"1"`
}
