package services

import (
	"abbooks_server/database"
	"abbooks_server/lib"
	"abbooks_server/structs"
	"abbooks_server/structs/tables"
	"context"
	"fmt"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

type ProfileService struct {
	logger       *gecho.Logger
	db           *database.DB
	cacheService *CacheService
}

func NewProfileService(logger *gecho.Logger, db *database.DB, cacheService *CacheService) *ProfileService {
	return &ProfileService{
		logger:       logger,
		db:           db,
		cacheService: cacheService,
	}
}

// GetOrCreate returns the user's profile, creating an empty one on first
// access. The unique constraint on user_id resolves concurrent first
// accesses the same way carts do: lose the insert, re-fetch the winner.
func (ps *ProfileService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*tables.UserProfile, error) {
	profile, err := database.Query[tables.UserProfile](ps.db).Where("user_id", userID).First(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	profile, err = database.Query[tables.UserProfile](ps.db).Insert(ctx, &tables.UserProfile{UserID: userID})
	if err != nil {
		if lib.IsUniqueViolation(lib.MapPgError(err)) {
			return database.Query[tables.UserProfile](ps.db).Where("user_id", userID).First(ctx)
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	ps.logger.Debug("Created profile for user", gecho.Field("user_id", userID))
	return profile, nil
}

// Update persists the submitted profile fields and returns the stored row.
// Absent fields are left untouched; the email lives on the user row and is
// updated alongside.
func (ps *ProfileService) Update(ctx context.Context, userID uuid.UUID, req *structs.ProfileUpdateRequest) (*tables.UserProfile, error) {
	if _, err := ps.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date of birth: %w", err)
		}
		updates["date_of_birth"] = dob
	}

	if len(updates) > 0 {
		_, err := database.Query[tables.UserProfile](ps.db).
			Where("user_id", userID).
			Update(ctx, updates)
		if err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	if req.Email != nil {
		_, err := database.Query[tables.User](ps.db).
			Where("id", userID).
			Update(ctx, map[string]any{"email": *req.Email})
		if err != nil {
			return nil, fmt.Errorf("failed to update email: %w", err)
		}
		if cacheErr := ps.cacheService.DeleteUserFromCache(userID); cacheErr != nil {
			ps.logger.Warn("Failed to evict cached user after email change", gecho.Field("error", cacheErr))
		}
	}

	return database.Query[tables.UserProfile](ps.db).Where("user_id", userID).First(ctx)
}

// GetUser loads a user by id, preferring the cache.
func (ps *ProfileService) GetUser(ctx context.Context, userID uuid.UUID) (*tables.User, error) {
	if cached, err := ps.cacheService.GetUserFromCache(userID); err == nil && cached != nil {
		return cached, nil
	}

	user, err := database.FindByID[tables.User](ps.db, ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, lib.ErrNotFound
	}

	user.PasswordHash = ""
	if cacheErr := ps.cacheService.SetUserInCache(user); cacheErr != nil {
		ps.logger.Debug("Failed to cache user", gecho.Field("error", cacheErr))
	}
	return user, nil
}
