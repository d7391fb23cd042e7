package models

import "time"

// CollectionShare represents a share link created for a collection. The
// token is an opaque UUID handed out to the sharer.
type CollectionShare struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	CollectionID uint      `json:"collection_id" gorm:"index"`
	UserID       uint      `json:"user_id" gorm:"index"`
	Token        string    `json:"token" gorm:"size:36;uniqueIndex"`
	CreatedAt    time.Time `json:"created_at"`
}
