package structs

// ProductCreateRequest is the add-book payload. Price is fixed-point
// decimal expressed in cents.
type ProductCreateRequest struct {
	Title       string  `json:"title" validate:"required,max=100"`
	Slug        string  `json:"slug" validate:"omitempty,max=255"`
	Description string  `json:"description" validate:"required"`
	ImageURL    string  `json:"image_url" validate:"omitempty,url"`
	PriceCents  int64   `json:"price_cents" validate:"required,gt=0"`
	AuthorID    int64   `json:"author_id" validate:"required,gt=0"`
	CategoryIDs []int64 `json:"category_ids" validate:"required,min=1,dive,gt=0"`
	IsSale      *bool   `json:"is_sale"`
}
