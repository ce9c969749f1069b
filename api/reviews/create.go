package reviews

import (
	"abbooks_server/lib"
	"abbooks_server/structs"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// HandleCreate stores a review for the product named in the URL. A reply's
// parent must already exist on the same product.
func (rrm *ReviewRoutesManager) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	product, err := rrm.catalogService.GetBySlug(ctx, slug)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
			return
		}

		rrm.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("slug", slug))
		gecho.InternalServerError(w, gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ReviewCreateRequest](r)
	if err != nil {
		rrm.logger.Warn("Failed to extract request body", gecho.Field("error", err))

		var ve *lib.ValidationError
		if errors.As(err, &ve) {
			gecho.BadRequest(w,
				gecho.WithMessage("Please check the submitted fields"),
				gecho.WithData(ve.Errors),
				gecho.Send(),
			)
			return
		}

		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	review, err := rrm.reviewService.Create(ctx, product.ID, body)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.BadRequest(w, gecho.WithMessage("Parent review does not exist on this product"), gecho.Send())
			return
		}

		rrm.logger.Error("Failed to create review", gecho.Field("error", err), gecho.Field("product_id", product.ID))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to save review"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Review saved"),
		gecho.WithData(review),
		gecho.Send(),
	)
}
