package auth

import (
	"abbooks_server/lib"
	"abbooks_server/structs"
	"errors"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := lib.ExtractAndValidateBody[structs.RegisterRequest](r)
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

	if !arm.authService.VerifyCaptcha(body.CaptchaID, body.CaptchaAnswer) {
		arm.logger.Warn("Captcha verification failed on registration")
		gecho.BadRequest(w, gecho.WithMessage("Captcha verification failed"), gecho.Send())
		return
	}

	user, err := arm.authService.Register(ctx, body)
	if err != nil {
		if errors.Is(err, lib.ErrConflict) {
			gecho.Conflict(w, gecho.WithMessage("Username is already taken"), gecho.Send())
			return
		}

		arm.logger.Error("Registration failed", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete registration"), gecho.Send())
		return
	}

	// Auto-login after registration
	if !arm.issueSession(w, r, user) {
		return
	}

	go arm.emailService.SendWelcomeEmail(user)

	gecho.Success(w,
		gecho.WithMessage("Registration successful"),
		gecho.WithData(user),
		gecho.Send(),
	)
}
