package auth

import (
	"abbooks_server/api/middleware"
	"abbooks_server/lib"
	"abbooks_server/structs"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleGetProfile returns the caller's profile, creating an empty row on
// first access.
func (arm *AuthRoutesManager) HandleGetProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		gecho.Unauthorized(w, gecho.Send())
		return
	}

	profile, err := arm.profileService.GetOrCreate(ctx, claims.Sub)
	if err != nil {
		arm.logger.Error("Failed to load profile", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load profile"), gecho.Send())
		return
	}

	user, err := arm.profileService.GetUser(ctx, claims.Sub)
	if err != nil {
		arm.logger.Error("Failed to load user", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to load profile"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"user":    user,
			"profile": profile,
		}),
		gecho.Send(),
	)
}

// HandleUpdateProfile persists the submitted profile fields and echoes the
// stored state back.
func (arm *AuthRoutesManager) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, ok := middleware.GetClaimsFromContext(ctx)
	if !ok {
		gecho.Unauthorized(w, gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.ProfileUpdateRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))

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

	profile, err := arm.profileService.Update(ctx, claims.Sub, body)
	if err != nil {
		arm.logger.Error("Failed to update profile", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to update profile"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Profile updated"),
		gecho.WithData(profile),
		gecho.Send(),
	)
}
