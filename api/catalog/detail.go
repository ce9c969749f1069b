package catalog

import (
	"abbooks_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// HandleDetail serves one product with its author, categories and rating
// aggregate.
func (crm *CatalogRoutesManager) HandleDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	product, err := crm.catalogService.GetBySlug(ctx, slug)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("Product not found"),
				gecho.Send(),
			)
			return
		}

		crm.logger.Error("Failed to fetch product", gecho.Field("error", err), gecho.Field("slug", slug))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to load product"),
			gecho.Send(),
		)
		return
	}

	summary, err := crm.ratingService.Summary(ctx, product.ID)
	if err != nil {
		crm.logger.Warn("Failed to load rating summary", gecho.Field("error", err), gecho.Field("product_id", product.ID))
		summary = nil
	}

	// The detail page renders the rating form, so ship the star choices
	// along instead of forcing a second round trip.
	stars, err := crm.ratingService.ListStars(ctx)
	if err != nil {
		crm.logger.Warn("Failed to load rating stars", gecho.Field("error", err))
		stars = nil
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"product": product,
			"rating":  summary,
			"stars":   stars,
		}),
		gecho.Send(),
	)
}
