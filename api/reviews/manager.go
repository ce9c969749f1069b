package reviews

import (
	"abbooks_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type ReviewRoutesManager struct {
	logger         *gecho.Logger
	reviewService  *services.ReviewService
	catalogService *services.CatalogService
}

func NewReviewRoutesManager(
	logger *gecho.Logger,
	reviewService *services.ReviewService,
	catalogService *services.CatalogService,
) *ReviewRoutesManager {
	return &ReviewRoutesManager{
		logger:         logger,
		reviewService:  reviewService,
		catalogService: catalogService,
	}
}

func (rrm *ReviewRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/product/{slug}/reviews", func(r chi.Router) {
		r.Get("/", rrm.HandleList)
		r.Post("/", rrm.HandleCreate)
	})
}
