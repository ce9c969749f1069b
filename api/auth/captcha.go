package auth

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleCaptcha issues a human-verification challenge. The answer lives in
// the cache until its TTL runs out or the challenge is consumed.
func (arm *AuthRoutesManager) HandleCaptcha(w http.ResponseWriter, r *http.Request) {
	challenge, err := arm.authService.GenerateCaptcha()
	if err != nil {
		arm.logger.Error("Failed to generate captcha", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to issue captcha"), gecho.Send())
		return
	}

	gecho.Success(w,
		gecho.WithData(challenge),
		gecho.Send(),
	)
}
