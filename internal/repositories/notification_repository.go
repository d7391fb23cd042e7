package repositories

import (
	"errors"
	"time"

	"github.com/clipshelf/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationFilter narrows a notification listing. Type "" means all
// types; Read nil means read and unread.
type NotificationFilter struct {
	Type string
	Read *bool
}

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByID(id uint) (*models.Notification, error)
	GetByRecipientID(recipientID uint, filter NotificationFilter, page, limit int) ([]models.Notification, int64, error)
	GetSentByActor(actorID uint, page, limit int) ([]models.Notification, int64, error)
	GetUnreadCount(recipientID uint) (int64, error)
	MarkAsRead(notificationID uint) error
	MarkAllAsRead(recipientID uint) (int64, error)
	Delete(notificationID uint) error
	Stats(recipientID uint) ([]models.NotificationStat, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

// NewPostgresNotificationRepository creates a NotificationRepository backed
// by PostgreSQL.
func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

// Create stores one notification. Self-notifications are refused here as a
// final guard; the orchestrator suppresses them before ever calling in.
func (r *postgresNotificationRepository) Create(notification *models.Notification) error {
	if notification.RecipientID == notification.ActorID {
		return ErrSelfReference
	}
	return r.db.Create(notification).Error
}

func (r *postgresNotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *postgresNotificationRepository) GetByRecipientID(recipientID uint, filter NotificationFilter, page, limit int) ([]models.Notification, int64, error) {
	q := r.db.Model(&models.Notification{}).Where("recipient_id = ?", recipientID)
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Read != nil {
		if *filter.Read {
			q = q.Where("read_at IS NOT NULL")
		} else {
			q = q.Where("read_at IS NULL")
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	offset := (page - 1) * limit
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&notifications).Error
	return notifications, total, err
}

// GetSentByActor returns the same records viewed from the actor's side. The
// underlying relation is not duplicated; only the viewpoint changes.
func (r *postgresNotificationRepository) GetSentByActor(actorID uint, page, limit int) ([]models.Notification, int64, error) {
	q := r.db.Model(&models.Notification{}).Where("actor_id = ?", actorID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []models.Notification
	offset := (page - 1) * limit
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&notifications).Error
	return notifications, total, err
}

func (r *postgresNotificationRepository) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).Where("recipient_id = ? AND read_at IS NULL", recipientID).Count(&count).Error
	return count, err
}

// MarkAsRead sets read_at once. The read_at IS NULL guard makes a second
// call a no-op rather than moving the timestamp.
func (r *postgresNotificationRepository) MarkAsRead(notificationID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND read_at IS NULL", notificationID).
		Update("read_at", time.Now()).Error
}

// MarkAllAsRead marks every unread notification of the recipient and
// returns how many were affected.
func (r *postgresNotificationRepository) MarkAllAsRead(recipientID uint) (int64, error) {
	res := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read_at IS NULL", recipientID).
		Update("read_at", time.Now())
	return res.RowsAffected, res.Error
}

func (r *postgresNotificationRepository) Delete(notificationID uint) error {
	res := r.db.Delete(&models.Notification{}, notificationID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats returns per-type totals with unread counts for the recipient.
func (r *postgresNotificationRepository) Stats(recipientID uint) ([]models.NotificationStat, error) {
	var stats []models.NotificationStat
	err := r.db.Model(&models.Notification{}).
		Select("type, COUNT(*) AS total, SUM(CASE WHEN read_at IS NULL THEN 1 ELSE 0 END) AS unread").
		Where("recipient_id = ?", recipientID).
		Group("type").
		Order("total DESC").
		Scan(&stats).Error
	return stats, err
}

// DeleteOlderThan purges notifications older than the cutoff. Idempotent.
func (r *postgresNotificationRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
