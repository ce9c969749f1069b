package services

import (
	"abbooks_server/lib"
	"abbooks_server/structs"
	"abbooks_server/structs/tables"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testAuthService() *AuthService {
	return &AuthService{
		cfg: &structs.Config{
			Auth: &structs.AuthConfig{
				AccessTokenSecret:  "test-access-secret",
				AccessTokenExpiry:  15 * time.Minute,
				RefreshTokenSecret: "test-refresh-secret",
				RefreshTokenExpiry: 7 * 24 * time.Hour,
			},
		},
	}
}

// Smaller params keep the test fast without changing the code path.
var testArgonParams = &structs.ArgonParams{
	Memory:  8 * 1024,
	Time:    1,
	Threads: 2,
	KeyLen:  32,
	SaltLen: 16,
}

func TestHashAndVerifyPassword(t *testing.T) {
	as := testAuthService()

	hash, err := as.HashPassword("correct horse battery staple", testArgonParams)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("unexpected hash format: %s", hash)
	}

	ok, err := as.VerifyPassword("correct horse battery staple", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password should verify")
	}

	ok, err = as.VerifyPassword("wrong password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("wrong password should not verify")
	}
}

func TestHashPasswordSaltsDiffer(t *testing.T) {
	as := testAuthService()

	first, err := as.HashPassword("same password", testArgonParams)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	second, err := as.HashPassword("same password", testArgonParams)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password should differ")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	as := testAuthService()

	if _, err := as.VerifyPassword("whatever", "not-a-hash"); err == nil {
		t.Error("malformed hash should error")
	}
}

func TestGenerateAccessTokenRoundTrip(t *testing.T) {
	as := testAuthService()
	user := &tables.User{
		Id:       uuid.New(),
		Username: "reader",
		Role:     "user",
	}

	token, err := as.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := lib.ParseToken(token, as.GetAccessTokenSecret())
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if claims.Sub != user.Id {
		t.Errorf("sub = %s, want %s", claims.Sub, user.Id)
	}
	if claims.Username != "reader" {
		t.Errorf("username = %q, want reader", claims.Username)
	}
	if claims.Role != "user" {
		t.Errorf("role = %q, want user", claims.Role)
	}
	if claims.Jti == uuid.Nil {
		t.Error("jti should be set")
	}
	if !claims.Exp.After(time.Now()) {
		t.Error("token should not be expired")
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	as := testAuthService()
	user := &tables.User{Id: uuid.New(), Username: "reader", Role: "user"}

	token, err := as.GenerateAccessToken(user)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	if _, err := lib.ParseToken(token, "some-other-secret"); err == nil {
		t.Error("token signed with a different secret should not parse")
	}
}
