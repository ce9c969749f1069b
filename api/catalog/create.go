package catalog

import (
	"abbooks_server/lib"
	"abbooks_server/structs"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleAddBookForm returns the choices the add-book form needs.
func (crm *CatalogRoutesManager) HandleAddBookForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	categories, err := crm.catalogService.ListCategories(ctx)
	if err != nil {
		crm.logger.Error("Failed to list categories", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.Send())
		return
	}

	authors, err := crm.catalogService.ListAuthors(ctx)
	if err != nil {
		crm.logger.Error("Failed to list authors", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"categories": categories,
			"authors":    authors,
		}),
		gecho.Send(),
	)
}

// HandleAddBook creates a product from the add-book form payload.
func (crm *CatalogRoutesManager) HandleAddBook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := lib.ExtractAndValidateBody[structs.ProductCreateRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract request body", gecho.Field("error", err))

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

	product, err := crm.catalogService.CreateProduct(ctx, body)
	if err != nil {
		switch {
		case errors.Is(err, lib.ErrConflict):
			gecho.Conflict(w,
				gecho.WithMessage("A product with this slug already exists"),
				gecho.Send(),
			)
		case lib.IsNotFound(err):
			gecho.BadRequest(w,
				gecho.WithMessage("Unknown author or category reference"),
				gecho.Send(),
			)
		case errors.Is(err, lib.ErrInvalidArgument):
			gecho.BadRequest(w,
				gecho.WithMessage("A slug cannot be derived from this title; provide one explicitly"),
				gecho.Send(),
			)
		default:
			crm.logger.Error("Failed to create product", gecho.Field("error", err))
			gecho.InternalServerError(w,
				gecho.WithMessage("Unable to create product"),
				gecho.Send(),
			)
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}
