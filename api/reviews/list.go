package reviews

import (
	"abbooks_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// HandleList serves a product's reviews as a flat list threaded via parent.
func (rrm *ReviewRoutesManager) HandleList(w http.ResponseWriter, r *http.Request) {
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

	reviews, err := rrm.reviewService.ListByProduct(ctx, product.ID)
	if err != nil {
		rrm.logger.Error("Failed to list reviews", gecho.Field("error", err), gecho.Field("product_id", product.ID))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load reviews"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(reviews),
		gecho.Send(),
	)
}
