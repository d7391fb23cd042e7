package models

import (
	"strings"
	"time"
	"unicode"
)

// Collection represents a curated set of videos (PostgreSQL). LikeCount and
// VideoCount are denormalized counters maintained by the counter updater.
type Collection struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"user_id" gorm:"index"`
	Title       string    `json:"title" validate:"required,min=1,max=120"`
	Slug        string    `json:"slug" gorm:"size:140;index"`
	Description string    `json:"description"`
	Visibility  string    `json:"visibility" gorm:"size:10;default:'public'"`
	LikeCount   int64     `json:"like_count" gorm:"default:0"`
	VideoCount  int64     `json:"video_count" gorm:"default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewCollection builds a collection with its slug computed up front.
// Slug derivation is explicit here rather than hidden in a persistence hook.
func NewCollection(ownerID uint, title, description, visibility string) *Collection {
	if visibility != VisibilityPrivate {
		visibility = VisibilityPublic
	}
	return &Collection{
		UserID:      ownerID,
		Title:       title,
		Slug:        Slugify(title),
		Description: description,
		Visibility:  visibility,
	}
}

// Owner implements Ownable.
func (c *Collection) Owner() uint { return c.UserID }

// Slugify lowercases a title and collapses non-alphanumeric runs to single
// hyphens.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// CreateCollectionRequest defines the request body for creating a collection.
type CreateCollectionRequest struct {
	Title       string `json:"title" validate:"required,min=1,max=120"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Visibility  string `json:"visibility" validate:"omitempty,oneof=public private"`
}

// UpdateCollectionRequest defines the request body for updating a collection.
type UpdateCollectionRequest struct {
	Title       string `json:"title,omitempty" validate:"omitempty,min=1,max=120"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Visibility  string `json:"visibility,omitempty" validate:"omitempty,oneof=public private"`
}
