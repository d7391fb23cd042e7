package models

import "time"

// Like represents a like edge from a user to a likeable entity. The unique
// index over (user_id, likeable_kind, likeable_id) serializes concurrent
// duplicate likes at the store.
type Like struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	UserID       uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_likeable"`
	LikeableKind string    `json:"likeable_kind" gorm:"size:20;uniqueIndex:idx_user_likeable"`
	LikeableID   string    `json:"likeable_id" gorm:"size:40;index;uniqueIndex:idx_user_likeable"`
	CreatedAt    time.Time `json:"created_at"`
}
