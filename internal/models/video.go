package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video represents a curated video stored in MongoDB. Counters are
// maintained with $inc through the counter updater.
type Video struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	CollectionID uint               `json:"collection_id" bson:"collection_id"`
	OwnerID      uint               `json:"owner_id" bson:"owner_id"`
	Title        string             `json:"title" bson:"title"`
	SourceURL    string             `json:"source_url" bson:"source_url"`
	ThumbnailURL string             `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	DurationSec  int                `json:"duration_sec" bson:"duration_sec"`
	LikeCount    int64              `json:"like_count" bson:"like_count"`
	CommentCount int64              `json:"comment_count" bson:"comment_count"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updated_at"`
}

// Owner implements Ownable.
func (v *Video) Owner() uint { return v.OwnerID }

// AddVideoRequest defines the request body for adding a video to a collection.
type AddVideoRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200"`
	SourceURL    string `json:"source_url" validate:"required,url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	DurationSec  int    `json:"duration_sec" validate:"omitempty,min=0"`
}
