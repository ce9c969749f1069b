package ratings

import (
	"abbooks_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type RatingRoutesManager struct {
	logger        *gecho.Logger
	ratingService *services.RatingService
}

func NewRatingRoutesManager(
	logger *gecho.Logger,
	ratingService *services.RatingService,
) *RatingRoutesManager {
	return &RatingRoutesManager{
		logger:        logger,
		ratingService: ratingService,
	}
}

func (rrm *RatingRoutesManager) RegisterRoutes(r chi.Router) {
	r.Get("/rating-stars", rrm.HandleListStars)
	r.Post("/add-rating", rrm.HandleSubmit)
}
