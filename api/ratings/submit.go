package ratings

import (
	"abbooks_server/lib"
	"abbooks_server/structs"
	"encoding/json"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleSubmit records a star rating keyed by the client IP. Repeats from
// the same address overwrite the earlier star for that product.
func (rrm *RatingRoutesManager) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := lib.ExtractAndValidateBody[structs.RatingRequest](r)
	if err != nil {
		rrm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid rating payload"), gecho.Send())
		return
	}

	ip := lib.ClientIP(r)

	rating, err := rrm.ratingService.Submit(ctx, ip, body)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.BadRequest(w, gecho.WithMessage("Unknown product or star reference"), gecho.Send())
			return
		}

		rrm.logger.Error("Failed to submit rating", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to save rating"), gecho.Send())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(map[string]any{
		"message": "Rating saved",
		"data":    rating,
	}); err != nil {
		rrm.logger.Error("Failed to encode rating response", gecho.Field("error", err))
	}
}
