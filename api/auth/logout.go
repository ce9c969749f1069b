package auth

import (
	"abbooks_server/lib"
	"net/http"

	"github.com/MonkyMars/gecho"
)

// HandleLogout revokes the caller's access token, clears the auth cookies,
// and empties the caller's own cart (zeroing cart_count with it). Carts
// belonging to anyone else are out of scope, and an anonymous caller's
// session cart and cart_count indicator are left intact for their next
// visit.
func (arm *AuthRoutesManager) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	claims, err := lib.ExtractClaims(r, arm.authService.GetAccessTokenSecret())
	if err == nil {
		if blErr := arm.cacheService.BlacklistToken(claims.Jti, claims.Exp); blErr != nil {
			arm.logger.Warn("Failed to blacklist token", gecho.Field("error", blErr), gecho.Field("jti", claims.Jti))
		}

		if cart, cartErr := arm.cartService.CartForUser(ctx, claims.Sub); cartErr == nil {
			if clearErr := arm.cartService.Clear(ctx, cart.ID); clearErr != nil {
				arm.logger.Error("Failed to clear cart on logout", gecho.Field("error", clearErr), gecho.Field("cart_id", cart.ID))
			}
		}

		if cacheErr := arm.cacheService.DeleteUserFromCache(claims.Sub); cacheErr != nil {
			arm.logger.Debug("Failed to evict cached user on logout", gecho.Field("error", cacheErr))
		}

		// Only the authenticated path empties a cart, so only it may zero
		// the indicator; an anonymous caller's session cart keeps its lines.
		lib.ClearCookie(lib.CartCountCookieName, w)
	}

	lib.ClearCookie(lib.AccessCookieName, w)
	lib.ClearCookie(lib.RefreshCookieName, w)

	gecho.Success(w,
		gecho.WithMessage("Logged out"),
		gecho.Send(),
	)
}
