package catalog

import (
	"abbooks_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

// HandleCategory lists the on-sale products in one category. An unknown
// category and one with nothing for sale both answer 404.
func (crm *CatalogRoutesManager) HandleCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	products, err := crm.catalogService.ListByCategorySlug(ctx, slug)
	if err != nil {
		if lib.IsNotFound(err) {
			gecho.NotFound(w,
				gecho.WithMessage("Category not found"),
				gecho.Send(),
			)
			return
		}

		crm.logger.Error("Failed to fetch category products", gecho.Field("error", err), gecho.Field("slug", slug))
		gecho.InternalServerError(w,
			gecho.WithMessage("Unable to load category"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"products": products,
		}),
		gecho.Send(),
	)
}
