package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User represents a registered account (PostgreSQL). FollowerCount and
// FollowingCount are denormalized; they are mutated only through the
// counter updater's atomic adjust, never recomputed inline.
type User struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	Name           string    `json:"name"`
	Username       string    `json:"username" gorm:"size:40;uniqueIndex"`
	Email          string    `json:"email" gorm:"uniqueIndex"`
	Password       string    `json:"-"` // bcrypt hash, never serialized
	FirebaseUID    string    `json:"firebase_uid,omitempty" gorm:"index"`
	FollowerCount  int64     `json:"follower_count" gorm:"default:0"`
	FollowingCount int64     `json:"following_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// DisplayName returns the name shown in feeds and notifications.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}

// Owner implements Ownable: a user subject is owned by the user themselves,
// so following someone notifies that person.
func (u *User) Owner() uint { return u.ID }

// UserCompact is the reduced user shape embedded in enriched feed and
// notification responses.
type UserCompact struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// ToCompact reduces a user to its embeddable shape.
func (u *User) ToCompact() UserCompact {
	return UserCompact{ID: u.ID, Name: u.Name, Username: u.Username}
}

// SignupRequest defines the request body for local registration.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=3,max=40,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the request body for local authentication.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// FirebaseLoginRequest defines the request body for registering a
// Firebase-authenticated user in the local database.
type FirebaseLoginRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Username string `json:"username" validate:"required,min=3,max=40,alphanum"`
	Email    string `json:"email" validate:"required,email"`
}

// UpdateUserRequest defines the request body for profile updates.
type UpdateUserRequest struct {
	Name  string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Email string `json:"email,omitempty" validate:"omitempty,email"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
