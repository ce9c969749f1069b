package auth

import (
	"abbooks_server/lib"
	"abbooks_server/services"
	"abbooks_server/structs"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MonkyMars/gecho"
)

func testLogoutManager() *AuthRoutesManager {
	cfg := &structs.Config{
		Auth: &structs.AuthConfig{
			AccessTokenSecret:  "test-access-secret",
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenSecret: "test-refresh-secret",
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
	}
	logger := gecho.NewDefaultLogger()

	return &AuthRoutesManager{
		logger:      logger,
		authService: services.NewAuthService(cfg, logger, nil, nil),
		cfg:         cfg,
	}
}

// An anonymous caller has no token and no cart was emptied, so logout must
// not zero the cart_count indicator their session cart still backs.
func TestLogoutAnonymousKeepsCartCount(t *testing.T) {
	arm := testLogoutManager()

	rec := httptest.NewRecorder()
	arm.HandleLogout(rec, httptest.NewRequest("GET", "/logout", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	cleared := map[string]bool{}
	for _, c := range rec.Result().Cookies() {
		cleared[c.Name] = c.MaxAge < 0
	}

	if !cleared[lib.AccessCookieName] {
		t.Error("access token cookie should be cleared")
	}
	if !cleared[lib.RefreshCookieName] {
		t.Error("refresh token cookie should be cleared")
	}
	if _, present := cleared[lib.CartCountCookieName]; present {
		t.Error("cart_count cookie must be left alone for anonymous callers")
	}
}
