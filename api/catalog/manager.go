package catalog

import (
	"abbooks_server/api/middleware"
	"abbooks_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CatalogRoutesManager struct {
	logger         *gecho.Logger
	catalogService *services.CatalogService
	ratingService  *services.RatingService
	mw             *middleware.Middleware
}

func NewCatalogRoutesManager(
	logger *gecho.Logger,
	catalogService *services.CatalogService,
	ratingService *services.RatingService,
	mw *middleware.Middleware,
) *CatalogRoutesManager {
	return &CatalogRoutesManager{
		logger:         logger,
		catalogService: catalogService,
		ratingService:  ratingService,
		mw:             mw,
	}
}

func (crm *CatalogRoutesManager) RegisterRoutes(r chi.Router) {
	// The storefront root and /products serve the same listing
	r.Get("/", crm.HandleList)
	r.Get("/products", crm.HandleList)
	r.Get("/product/{slug}", crm.HandleDetail)
	r.Get("/category/{slug}", crm.HandleCategory)

	r.Group(func(r chi.Router) {
		r.Use(crm.mw.UserAuthMiddleware)
		r.Get("/add-book", crm.HandleAddBookForm)
		r.Post("/add-book", crm.HandleAddBook)
	})
}
