package models

import "time"

// Notification types, one per fan-out event kind.
const (
	NotifCollectionLiked   = "collection_liked"
	NotifCollectionCreated = "collection_created"
	NotifCollectionShared  = "collection_shared"
	NotifVideoLiked        = "video_liked"
	NotifVideoAdded        = "video_added"
	NotifCommentAdded      = "comment_added"
	NotifUserFollowed      = "user_followed"
)

// NotificationData is the payload snapshot captured at dispatch time:
// actor display name, subject title, human-readable phrase.
type NotificationData map[string]interface{}

// Notification represents a per-recipient notification (PostgreSQL).
// ReadAt is null while unread; it is set at most once.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	RecipientID uint             `json:"recipient_id" gorm:"index"`
	ActorID     uint             `json:"actor_id" gorm:"index"`
	Type        string           `json:"type" gorm:"size:30;index"`
	SubjectKind string           `json:"subject_kind" gorm:"size:20"`
	SubjectID   string           `json:"subject_id" gorm:"size:40"`
	Data        NotificationData `json:"data" gorm:"serializer:json"`
	ReadAt      *time.Time       `json:"read_at" gorm:"index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

// Read reports whether the notification has been marked read.
func (n *Notification) Read() bool { return n.ReadAt != nil }

// SubjectRef returns the notification's polymorphic subject reference.
func (n *Notification) SubjectRef() SubjectRef {
	return SubjectRef{Kind: SubjectKind(n.SubjectKind), ID: n.SubjectID}
}

// NotificationStat is one row of the per-recipient notification summary.
type NotificationStat struct {
	Type   string `json:"type"`
	Total  int64  `json:"total"`
	Unread int64  `json:"unread"`
}
