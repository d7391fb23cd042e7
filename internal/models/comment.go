package models

import "time"

// Comment represents a comment on a video (PostgreSQL; the video itself
// lives in MongoDB, referenced by its ObjectID hex).
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	VideoID   string    `json:"video_id" gorm:"size:40;index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Body      string    `json:"body" validate:"required,min=1,max=500"`
	CreatedAt time.Time `json:"created_at"`
}

// Owner implements Ownable: the comment's author.
func (c *Comment) Owner() uint { return c.UserID }

// CreateCommentRequest defines the request body for commenting on a video.
type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=500"`
}
