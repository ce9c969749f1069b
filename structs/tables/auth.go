package tables

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	tableName    struct{}  `bun:"table:users,alias:u"`
	Id           uuid.UUID `json:"id" bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Username     string    `json:"username" bun:"username,unique,notnull"`
	Email        string    `json:"email" bun:"email"`
	PasswordHash string    `json:"-" bun:"password_hash,notnull"`
	Role         string    `json:"role" bun:"role,notnull,default:'user'"`
	LastLogin    time.Time `json:"last_login" bun:"last_login,default:now()"`
	CreatedAt    time.Time `json:"created_at" bun:"created_at,notnull,default:now()"`
}

// UserProfile is created lazily on first profile access.
type UserProfile struct {
	tableName   struct{}   `bun:"table:user_profiles,alias:up"`
	ID          int64      `bun:"id,pk,autoincrement" json:"id"`
	UserID      uuid.UUID  `bun:"user_id,type:uuid,unique,notnull" json:"user_id"`
	FirstName   string     `bun:"first_name" json:"first_name,omitempty"`
	LastName    string     `bun:"last_name" json:"last_name,omitempty"`
	DateOfBirth *time.Time `bun:"date_of_birth" json:"date_of_birth,omitempty"`
	AvatarURL   string     `bun:"avatar_url" json:"avatar_url,omitempty"`
}
