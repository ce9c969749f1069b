package middleware

import (
	"abbooks_server/lib"
	"abbooks_server/structs"
	"context"
	"net/http"
	"time"

	"github.com/MonkyMars/gecho"
)

// ResolveIdentity attaches the caller's cart identity to the request context.
// A valid access token wins; otherwise the anonymous session cookie is used,
// minted on first contact. Every cart-touching route sits behind this.
func (mw *Middleware) ResolveIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var identity structs.CartIdentity

		if claims, err := lib.ExtractClaims(r, mw.authService.GetAccessTokenSecret()); err == nil {
			if !mw.cacheService.IsTokenBlacklisted(claims.Jti) {
				sub := claims.Sub
				identity.UserID = &sub
				ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
				ctx = context.WithValue(ctx, IdentityContextKey, identity)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}

		sessionKey, err := lib.GetCookieValue(mw.cfg.Session.CookieName, r)
		if err != nil || sessionKey == "" {
			sessionKey, err = lib.GenerateRandomToken()
			if err != nil {
				mw.logger.Error("Failed to generate session key", gecho.Field("error", err))
				gecho.InternalServerError(w, gecho.Send())
				return
			}

			if err := mw.cacheService.CreateSessionKey(sessionKey); err != nil {
				mw.logger.Warn("Failed to record session key", gecho.Field("error", err))
			}

			lib.SetCookie(mw.cfg.Session.CookieName, sessionKey, time.Now().Add(mw.cfg.Session.TTL), w)
		} else {
			mw.cacheService.TouchSession(sessionKey)
		}

		identity.SessionKey = sessionKey
		ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetIdentityFromContext extracts the resolved cart identity.
func GetIdentityFromContext(ctx context.Context) (structs.CartIdentity, bool) {
	identity, ok := ctx.Value(IdentityContextKey).(structs.CartIdentity)
	return identity, ok
}
