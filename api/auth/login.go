package auth

import (
	"abbooks_server/lib"
	"abbooks_server/structs"
	"abbooks_server/structs/tables"
	"net/http"

	"github.com/MonkyMars/gecho"
)

func (arm *AuthRoutesManager) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := lib.ExtractAndValidateBody[structs.AuthRequest](r)
	if err != nil {
		arm.logger.Warn("Failed to extract request body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Please check your login information and try again"), gecho.Send())
		return
	}

	if !arm.authService.VerifyCaptcha(body.CaptchaID, body.CaptchaAnswer) {
		arm.logger.Warn("Captcha verification failed on login")
		gecho.BadRequest(w, gecho.WithMessage("Captcha verification failed"), gecho.Send())
		return
	}

	user, err := arm.authService.Login(ctx, body.Username, body.Password)
	if err != nil {
		arm.logger.Warn("Login failed", gecho.Field("error", err))
		gecho.Unauthorized(w, gecho.WithMessage("Invalid credentials"), gecho.Send())
		return
	}

	if !arm.issueSession(w, r, user) {
		return
	}

	// Send last login to db asynchronously
	go func() {
		if err := arm.authService.UpdateLastLogin(user.Id); err != nil {
			arm.logger.Error("Failed to update last login", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		}
	}()

	gecho.Success(w,
		gecho.WithMessage("Login successful"),
		gecho.WithData(user),
		gecho.Send(),
	)
}

// issueSession sets the auth cookies and folds the caller's anonymous cart
// into the user cart. Returns false after writing an error response.
func (arm *AuthRoutesManager) issueSession(w http.ResponseWriter, r *http.Request, user *tables.User) bool {
	accessToken, err := arm.authService.GenerateAccessToken(user)
	if err != nil {
		arm.logger.Warn("Failed to generate access token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return false
	}

	refreshToken, err := arm.authService.GenerateRefreshToken(user)
	if err != nil {
		arm.logger.Warn("Failed to generate refresh token", gecho.Field("error", err))
		gecho.InternalServerError(w, gecho.WithMessage("Unable to complete login. Please try again"), gecho.Send())
		return false
	}

	lib.SetCookie(lib.RefreshCookieName, refreshToken, arm.authService.GetRefreshTokenExpiration(), w)
	lib.SetCookie(lib.AccessCookieName, accessToken, arm.authService.GetAccessTokenExpiration(), w)

	if sessionKey, cookieErr := lib.GetCookieValue(arm.cfg.Session.CookieName, r); cookieErr == nil && sessionKey != "" {
		if err := arm.cartService.MergeSessionCartIntoUser(r.Context(), sessionKey, user.Id); err != nil {
			arm.logger.Error("Failed to merge session cart", gecho.Field("error", err), gecho.Field("user_id", user.Id))
		}
		lib.ClearCookie(arm.cfg.Session.CookieName, w)
	}

	if cart, err := arm.cartService.CartForUser(r.Context(), user.Id); err == nil {
		if count, err := arm.cartService.CountLines(r.Context(), cart.ID); err == nil {
			lib.SetCartCountCookie(count, w)
		}
	}

	return true
}
