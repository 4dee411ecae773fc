package dto

type RulesResponse struct {
	Content string `json:"content"`
}

type UpdateRulesRequest struct {
	Content string `json:"content" validate:"required"`
}
