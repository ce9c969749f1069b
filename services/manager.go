package services

import (
	"abbooks_server/database"
	"abbooks_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	AuthService    *AuthService
	ProfileService *ProfileService
	EmailService   *EmailService
	CacheService   *CacheService
	HealthService  *HealthService
	CatalogService *CatalogService
	CartService    *CartService
	RatingService  *RatingService
	ReviewService  *ReviewService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	cacheService := NewCacheService(logger, cfg)
	authService := NewAuthService(cfg, logger, db, cacheService)
	profileService := NewProfileService(logger, db, cacheService)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db, cacheService)
	catalogService := NewCatalogService(logger, db)
	cartService := NewCartService(logger, db)
	ratingService := NewRatingService(logger, db)
	reviewService := NewReviewService(logger, db)

	return &ServiceManager{
		AuthService:    authService,
		ProfileService: profileService,
		EmailService:   emailService,
		CacheService:   cacheService,
		HealthService:  healthService,
		CatalogService: catalogService,
		CartService:    cartService,
		RatingService:  ratingService,
		ReviewService:  reviewService,
	}
}
