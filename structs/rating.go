package structs

// RatingRequest is the add-rating payload: references into the product and
// rating-star tables.
type RatingRequest struct {
	ProductID int64 `json:"product" validate:"required,gt=0"`
	StarID    int64 `json:"star" validate:"required,gt=0"`
}

// RatingSummary is the aggregate shown on a product detail page.
type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int     `json:"count"`
}
