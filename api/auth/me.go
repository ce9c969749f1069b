package auth

import (
	"abbooks_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleMe reports who the caller is, if anyone.
func (arm *AuthRoutesManager) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, err := lib.ExtractClaims(r, arm.authService.GetAccessTokenSecret())
	if err != nil || arm.cacheService.IsTokenBlacklisted(claims.Jti) {
		gecho.Unauthorized(w, gecho.WithMessage("Not logged in"), gecho.Send())
		return
	}

	user, err := arm.profileService.GetUser(r.Context(), claims.Sub)
	if err != nil {
		arm.logger.Error("Failed to load user", gecho.Field("error", err), gecho.Field("user_id", claims.Sub))
		gecho.InternalServerError(w, gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(user),
		gecho.Send(),
	)
}
