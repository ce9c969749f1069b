package ratings

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleListStars serves the star lookup set, highest value first.
func (rrm *RatingRoutesManager) HandleListStars(w http.ResponseWriter, r *http.Request) {
	stars, err := rrm.ratingService.ListStars(r.Context())
	if err != nil {
		rrm.logger.Error("Failed to list rating stars", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load rating stars"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(stars),
		gecho.Send(),
	)
}
