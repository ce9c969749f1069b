package api

import (
	"abbooks_server/api/auth"
	"abbooks_server/api/cart"
	"abbooks_server/api/catalog"
	"abbooks_server/api/health"
	"abbooks_server/api/middleware"
	"abbooks_server/api/ratings"
	"abbooks_server/api/reviews"
	"abbooks_server/services"
	"abbooks_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	catalogRoutes *catalog.CatalogRoutesManager
	cartRoutes    *cart.CartRoutesManager
	authRoutes    *auth.AuthRoutesManager
	ratingRoutes  *ratings.RatingRoutesManager
	reviewRoutes  *reviews.ReviewRoutesManager
	healthRoutes  *health.HealthRoutesManager
}

func NewRouterManager(
	logger *gecho.Logger,
	sm *services.ServiceManager,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *routerManager {
	return &routerManager{
		catalogRoutes: catalog.NewCatalogRoutesManager(logger, sm.CatalogService, sm.RatingService, mw),
		cartRoutes:    cart.NewCartRoutesManager(logger, sm.CartService, mw),
		authRoutes:    auth.NewAuthRoutesManager(logger, sm, cfg, mw),
		ratingRoutes:  ratings.NewRatingRoutesManager(logger, sm.RatingService),
		reviewRoutes:  reviews.NewReviewRoutesManager(logger, sm.ReviewService, sm.CatalogService),
		healthRoutes:  health.NewHealthRoutesManager(logger, sm.HealthService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.catalogRoutes.RegisterRoutes(r)
	rm.cartRoutes.RegisterRoutes(r)
	rm.authRoutes.RegisterRoutes(r)
	rm.ratingRoutes.RegisterRoutes(r)
	rm.reviewRoutes.RegisterRoutes(r)
	rm.healthRoutes.RegisterRoutes(r)
}
