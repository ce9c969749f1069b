package middleware

import (
	"abbooks_server/services"
	"abbooks_server/structs"

	"github.com/MonkyMars/gecho"
)

type Middleware struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	authService  *services.AuthService
	cacheService *services.CacheService
}

func NewMiddleware(cfg *structs.Config, logger *gecho.Logger, sm *services.ServiceManager) *Middleware {
	return &Middleware{
		logger:       logger,
		cfg:          cfg,
		authService:  sm.AuthService,
		cacheService: sm.CacheService,
	}
}
