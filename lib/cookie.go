package lib

import (
	"abbooks_server/config"
	"net/http"
	"strconv"
	"time"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"

	// CartCountCookieName mirrors the line count of the caller's cart so the
	// cart indicator stays in sync without an extra request.
	CartCountCookieName = "cart_count"
)

// SetCookie sets a secure, HttpOnly cookie for authentication/session usage
func SetCookie(key, val string, expiry time.Time, w http.ResponseWriter) {
	isProduction := config.IsProduction()

	sameSite := http.SameSiteLaxMode
	secure := false

	if isProduction {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	cookie := &http.Cookie{
		Name:     key,
		Value:    val,
		Expires:  expiry,
		Path:     "/",
		Secure:   secure,
		SameSite: sameSite,
		HttpOnly: true,
	}

	http.SetCookie(w, cookie)
}

func GetCookieValue(key string, r *http.Request) (string, error) {
	cookie, err := r.Cookie(key)
	if err != nil {
		return "", err
	}
	return cookie.Value, nil
}

// ClearCookie removes the cookie from the browser
func ClearCookie(key string, w http.ResponseWriter) {
	isProduction := config.IsProduction()

	sameSite := http.SameSiteLaxMode
	secure := false

	if isProduction {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	cookie := &http.Cookie{
		Name:     key,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		Secure:   secure,
		SameSite: sameSite,
		HttpOnly: true,
	}

	http.SetCookie(w, cookie)
}

// SetCartCountCookie records the current cart line count. Unlike the auth
// cookies it must be readable by JavaScript.
func SetCartCountCookie(count int, w http.ResponseWriter) {
	cookie := &http.Cookie{
		Name:     CartCountCookieName,
		Value:    strconv.Itoa(count),
		Path:     "/",
		SameSite: http.SameSiteLaxMode,
		HttpOnly: false, // Must be readable by JS
	}

	http.SetCookie(w, cookie)
}
