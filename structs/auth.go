package structs

import (
	"time"

	"github.com/google/uuid"
)

// AuthClaims are the decoded JWT claims carried on authenticated requests
type AuthClaims struct {
	Sub      uuid.UUID `json:"sub"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Iat      time.Time `json:"iat"`
	Exp      time.Time `json:"exp"`
	Jti      uuid.UUID `json:"jti"`
}

type AuthRequest struct {
	Username      string `json:"username" validate:"required,max=200"`
	Password      string `json:"password" validate:"required,max=300"`
	CaptchaID     string `json:"captcha_id" validate:"required"`
	CaptchaAnswer string `json:"captcha_answer" validate:"required"`
}

type RegisterRequest struct {
	Username      string `json:"username" validate:"required,min=3,max=200"`
	Password      string `json:"password" validate:"required,min=8,max=300"`
	Email         string `json:"email" validate:"omitempty,email"`
	CaptchaID     string `json:"captcha_id" validate:"required"`
	CaptchaAnswer string `json:"captcha_answer" validate:"required"`
}

// ProfileUpdateRequest carries the editable profile fields.
// All fields are optional; absent fields are left untouched.
type ProfileUpdateRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=200"`
	LastName    *string `json:"last_name" validate:"omitempty,max=200"`
	Email       *string `json:"email" validate:"omitempty,email"`
	DateOfBirth *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,url"`
}

type ArgonParams struct {
	Memory  uint32
	Time    uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// CaptchaChallenge is the human-verification challenge required by
// registration and login.
type CaptchaChallenge struct {
	ID       string `json:"id"`
	Question string `json:"question"`
}
