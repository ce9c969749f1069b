package services

import (
	"abbooks_server/database"
	"abbooks_server/lib"
	"abbooks_server/structs"
	"abbooks_server/structs/tables"
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"math/big"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
)

var DefaultParams = &structs.ArgonParams{
	Memory:  64 * 1024, // 64 MB
	Time:    1,
	Threads: 4,
	KeyLen:  32,
	SaltLen: 16,
}

type AuthService struct {
	logger       *gecho.Logger
	cfg          *structs.Config
	db           *database.DB
	cacheService *CacheService
}

func NewAuthService(cfg *structs.Config, logger *gecho.Logger, db *database.DB, cacheService *CacheService) *AuthService {
	return &AuthService{
		logger:       logger,
		cfg:          cfg,
		db:           db,
		cacheService: cacheService,
	}
}

// Login authenticates username/password and returns the user with the
// password hash stripped. Credential handling never leaks user existence.
func (as *AuthService) Login(ctx context.Context, username, password string) (*tables.User, error) {
	startTime := time.Now()

	user, err := database.Query[tables.User](as.db).Where("username", username).First(ctx)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if !lib.IsNotFound(mappedErr) {
			as.logger.Error("Unexpected database error during login",
				gecho.Field("error", mappedErr),
				gecho.Field("identifier", username),
			)
		}
		return nil, lib.ErrInvalidCredentials
	}

	if user == nil {
		as.logger.Debug("User not found during login attempt", gecho.Field("identifier", username))
		return nil, lib.ErrInvalidCredentials
	}

	valid, err := as.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		as.logger.Error("Failed to verify password hash",
			gecho.Field("error", err),
			gecho.Field("user_id", user.Id),
		)
		return nil, err
	}
	if !valid {
		as.logger.Debug("Invalid password attempt",
			gecho.Field("identifier", username),
			gecho.Field("user_id", user.Id),
		)
		return nil, lib.ErrInvalidCredentials
	}

	as.logger.Debug("User logged in successfully",
		gecho.Field("user_id", user.Id),
		gecho.Field("elapsed_time_ms", time.Since(startTime).Milliseconds()),
	)

	user.PasswordHash = ""

	if cacheErr := as.cacheService.SetUserInCache(user); cacheErr != nil {
		as.logger.Warn("Failed to set user in cache after login", gecho.Field("error", cacheErr), gecho.Field("user_id", user.Id))
	}

	return user, nil
}

// Register creates a new account. A duplicate username surfaces as
// lib.ErrConflict.
func (as *AuthService) Register(ctx context.Context, req *structs.RegisterRequest) (*tables.User, error) {
	passwordHash, err := as.HashPassword(req.Password, DefaultParams)
	if err != nil {
		as.logger.Error("Failed to hash password", gecho.Field("error", err))
		return nil, err
	}

	user := &tables.User{
		Id:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Role:         "user",
	}

	user, err = database.Query[tables.User](as.db).Insert(ctx, user)
	if err != nil {
		mappedErr := lib.MapPgError(err)
		if lib.IsUniqueViolation(mappedErr) {
			as.logger.Warn("Registration failed - duplicate username",
				gecho.Field("username", req.Username),
			)
		} else {
			as.logger.Error("Database error during registration",
				gecho.Field("error", mappedErr),
				gecho.Field("username", req.Username),
			)
		}
		return nil, mappedErr
	}

	as.logger.Debug("User registered successfully", gecho.Field("user_id", user.Id))

	user.PasswordHash = ""
	return user, nil
}

// UpdateLastLogin stamps the user's last_login column.
func (as *AuthService) UpdateLastLogin(userID uuid.UUID) error {
	_, err := database.Query[tables.User](as.db).
		Where("id", userID).
		Update(context.Background(), map[string]any{"last_login": time.Now()})
	return err
}

// HashPassword hashes a plain-text password and returns a string and possible error
func (as *AuthService) HashPassword(password string, p *structs.ArgonParams) (string, error) {
	salt, err := generateSalt(p.SaltLen)
	if err != nil {
		return "", err
	}
	hash := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)
	// format: $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
	params := fmt.Sprintf("m=%d,t=%d,p=%d", p.Memory, p.Time, p.Threads)
	encoded := fmt.Sprintf("$argon2id$v=19$%s$%s$%s", params, b64Salt, b64Hash)
	return encoded, nil
}

func generateSalt(n uint32) ([]byte, error) {
	b := make([]byte, n)
	_, err := rand.Read(b)
	return b, err
}

// VerifyPassword verifies a plain-text password against a hashed password
func (as *AuthService) VerifyPassword(password, hashedPassword string) (bool, error) {
	parts, err := lib.DecodeArgon2Hash(hashedPassword)
	if err != nil {
		return false, err
	}

	hash := argon2.IDKey([]byte(password), parts.Salt, parts.Time, parts.Memory, parts.Threads, parts.KeyLen)

	return lib.SecureCompare(hash, parts.Hash), nil
}

// GenerateAccessToken generates a JWT access token for the given user
func (as *AuthService) GenerateAccessToken(user *tables.User) (string, error) {
	return as.generateToken(user, as.cfg.Auth.AccessTokenSecret, as.GetAccessTokenExpiration())
}

// GenerateRefreshToken generates a JWT refresh token for the given user
func (as *AuthService) GenerateRefreshToken(user *tables.User) (string, error) {
	return as.generateToken(user, as.cfg.Auth.RefreshTokenSecret, as.GetRefreshTokenExpiration())
}

func (as *AuthService) generateToken(user *tables.User, secret string, exp time.Time) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":      user.Id.String(),
		"username": user.Username,
		"role":     user.Role,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
		"jti":      uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (as *AuthService) GetAccessTokenSecret() string {
	return as.cfg.Auth.AccessTokenSecret
}

func (as *AuthService) GetAccessTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.AccessTokenExpiry)
}

func (as *AuthService) GetRefreshTokenExpiration() time.Time {
	return time.Now().Add(as.cfg.Auth.RefreshTokenExpiry)
}

// GenerateCaptcha issues a human-verification challenge: a small arithmetic
// question whose answer is stored in the cache with TTL. Registration and
// login both require a valid, unconsumed challenge.
func (as *AuthService) GenerateCaptcha() (*structs.CaptchaChallenge, error) {
	a, err := randomInt(10)
	if err != nil {
		return nil, err
	}
	b, err := randomInt(10)
	if err != nil {
		return nil, err
	}

	challenge := &structs.CaptchaChallenge{
		ID:       uuid.New().String(),
		Question: fmt.Sprintf("What is %d + %d?", a, b),
	}

	if err := as.cacheService.StoreCaptchaAnswer(challenge.ID, fmt.Sprintf("%d", a+b)); err != nil {
		return nil, fmt.Errorf("failed to store captcha answer: %w", err)
	}

	return challenge, nil
}

// VerifyCaptcha checks and consumes a challenge answer.
func (as *AuthService) VerifyCaptcha(id, answer string) bool {
	return as.cacheService.CheckCaptchaAnswer(id, answer)
}

func randomInt(max int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(max))
	if err != nil {
		return 0, err
	}
	return n.Int64(), nil
}
