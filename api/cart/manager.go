package cart

import (
	"abbooks_server/api/middleware"
	"abbooks_server/services"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type CartRoutesManager struct {
	logger      *gecho.Logger
	cartService *services.CartService
	mw          *middleware.Middleware
}

func NewCartRoutesManager(
	logger *gecho.Logger,
	cartService *services.CartService,
	mw *middleware.Middleware,
) *CartRoutesManager {
	return &CartRoutesManager{
		logger:      logger,
		cartService: cartService,
		mw:          mw,
	}
}

func (crm *CartRoutesManager) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(crm.mw.ResolveIdentity)
		r.Get("/cart", crm.HandleView)
		r.Post("/cart", crm.HandleUpsert)
		r.Get("/clean-cart", crm.HandleClear)
	})
}
