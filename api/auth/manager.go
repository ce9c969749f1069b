package auth

import (
	"abbooks_server/api/middleware"
	"abbooks_server/services"
	"abbooks_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type AuthRoutesManager struct {
	logger         *gecho.Logger
	authService    *services.AuthService
	profileService *services.ProfileService
	cacheService   *services.CacheService
	emailService   *services.EmailService
	cartService    *services.CartService
	cfg            *structs.Config
	mw             *middleware.Middleware
}

func NewAuthRoutesManager(
	logger *gecho.Logger,
	sm *services.ServiceManager,
	cfg *structs.Config,
	mw *middleware.Middleware,
) *AuthRoutesManager {
	return &AuthRoutesManager{
		logger:         logger,
		authService:    sm.AuthService,
		profileService: sm.ProfileService,
		cacheService:   sm.CacheService,
		emailService:   sm.EmailService,
		cartService:    sm.CartService,
		cfg:            cfg,
		mw:             mw,
	}
}

func (arm *AuthRoutesManager) RegisterRoutes(r chi.Router) {
	// Public routes
	r.Get("/captcha", arm.HandleCaptcha)
	r.Post("/reg", arm.HandleRegister)
	r.Post("/login", arm.HandleLogin)
	r.Get("/logout", arm.HandleLogout)
	r.Get("/me", arm.HandleMe)

	// Protected routes for user data
	r.Group(func(r chi.Router) {
		r.Use(arm.mw.UserAuthMiddleware)
		r.Get("/profile", arm.HandleGetProfile)
		r.Put("/profile", arm.HandleUpdateProfile)
	})
}
