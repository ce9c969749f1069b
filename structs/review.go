package structs

type ReviewCreateRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Text     string `json:"text" validate:"required,max=5000"`
	ParentID *int64 `json:"parent" validate:"omitempty,gt=0"`
}
