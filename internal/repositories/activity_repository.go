package repositories

import (
	"time"

	"github.com/clipshelf/backend/internal/models"
	"gorm.io/gorm"
)

// ActivityFilter carries the optional exact-match filters of the filtered
// feed view. Zero values mean "no filter"; each filter combines
// independently with the others.
type ActivityFilter struct {
	Action      string
	SubjectKind string
	ActorID     uint
}

// ActivityRepository defines the append-only activity log and its raw read
// windows. Every window is ordered created_at DESC with an id tie-break and
// capped to the requested size BEFORE read-time aggregation; the bounded
// window is the unit aggregation operates on.
type ActivityRepository interface {
	Record(activity *models.Activity) error

	PersonalizedWindow(userID uint, followingIDs []uint, offset, limit int) ([]models.Activity, int64, error)
	GlobalWindow(offset, limit int) ([]models.Activity, int64, error)
	OwnWindow(userID uint, offset, limit int) ([]models.Activity, int64, error)
	TargetedWindow(userID uint, offset, limit int) ([]models.Activity, int64, error)
	ActorPublicWindow(actorID uint, offset, limit int) ([]models.Activity, int64, error)
	FilteredWindow(filter ActivityFilter, offset, limit int) ([]models.Activity, int64, error)
	TrendingWindow(since time.Time, offset, limit int) ([]models.Activity, error)

	StatsByActor(actorID uint) ([]models.ActivityStat, error)
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

// PostgresActivityRepository implements ActivityRepository for PostgreSQL
type PostgresActivityRepository struct {
	db *gorm.DB
}

// NewPostgresActivityRepository creates a new PostgresActivityRepository
func NewPostgresActivityRepository(db *gorm.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{db: db}
}

// Record appends one immutable activity row. Rows are never updated after
// insert.
func (r *PostgresActivityRepository) Record(activity *models.Activity) error {
	if activity.AggregatedCount < 1 {
		activity.AggregatedCount = 1
	}
	return r.db.Create(activity).Error
}

func (r *PostgresActivityRepository) fetch(q *gorm.DB, offset, limit int) ([]models.Activity, int64, error) {
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var activities []models.Activity
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&activities).Error
	return activities, total, err
}

// PersonalizedWindow returns records by followed actors, public records and
// records about the user, excluding the user's own actions.
func (r *PostgresActivityRepository) PersonalizedWindow(userID uint, followingIDs []uint, offset, limit int) ([]models.Activity, int64, error) {
	q := r.db.Model(&models.Activity{}).Where("actor_id <> ?", userID)
	if len(followingIDs) > 0 {
		q = q.Where("actor_id IN ? OR visibility = ? OR target_user_id = ?", followingIDs, models.VisibilityPublic, userID)
	} else {
		q = q.Where("visibility = ? OR target_user_id = ?", models.VisibilityPublic, userID)
	}
	return r.fetch(q, offset, limit)
}

// GlobalWindow returns all public records.
func (r *PostgresActivityRepository) GlobalWindow(offset, limit int) ([]models.Activity, int64, error) {
	q := r.db.Model(&models.Activity{}).Where("visibility = ?", models.VisibilityPublic)
	return r.fetch(q, offset, limit)
}

// OwnWindow returns the user's own records, public and private.
func (r *PostgresActivityRepository) OwnWindow(userID uint, offset, limit int) ([]models.Activity, int64, error) {
	q := r.db.Model(&models.Activity{}).Where("actor_id = ?", userID)
	return r.fetch(q, offset, limit)
}

// TargetedWindow returns records that are about the user.
func (r *PostgresActivityRepository) TargetedWindow(userID uint, offset, limit int) ([]models.Activity, int64, error) {
	q := r.db.Model(&models.Activity{}).Where("target_user_id = ?", userID)
	return r.fetch(q, offset, limit)
}

// ActorPublicWindow returns an actor's public records, for profile feeds
// viewed by others.
func (r *PostgresActivityRepository) ActorPublicWindow(actorID uint, offset, limit int) ([]models.Activity, int64, error) {
	q := r.db.Model(&models.Activity{}).Where("actor_id = ? AND visibility = ?", actorID, models.VisibilityPublic)
	return r.fetch(q, offset, limit)
}

// FilteredWindow returns public records narrowed by the optional
// exact-match filters.
func (r *PostgresActivityRepository) FilteredWindow(filter ActivityFilter, offset, limit int) ([]models.Activity, int64, error) {
	q := r.db.Model(&models.Activity{}).Where("visibility = ?", models.VisibilityPublic)
	if filter.Action != "" {
		q = q.Where("action = ?", filter.Action)
	}
	if filter.SubjectKind != "" {
		q = q.Where("subject_kind = ?", filter.SubjectKind)
	}
	if filter.ActorID != 0 {
		q = q.Where("actor_id = ?", filter.ActorID)
	}
	return r.fetch(q, offset, limit)
}

// TrendingWindow returns public records created at or after since. A zero
// since means no lower bound. No total is computed for trending pages.
func (r *PostgresActivityRepository) TrendingWindow(since time.Time, offset, limit int) ([]models.Activity, error) {
	q := r.db.Where("visibility = ?", models.VisibilityPublic)
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	var activities []models.Activity
	err := q.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&activities).Error
	return activities, err
}

// StatsByActor returns the actor's record counts grouped by action.
func (r *PostgresActivityRepository) StatsByActor(actorID uint) ([]models.ActivityStat, error) {
	var stats []models.ActivityStat
	err := r.db.Model(&models.Activity{}).
		Select("action, COUNT(*) AS count").
		Where("actor_id = ?", actorID).
		Group("action").
		Order("count DESC").
		Scan(&stats).Error
	return stats, err
}

// DeleteOlderThan purges records older than the cutoff. Idempotent.
func (r *PostgresActivityRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&models.Activity{})
	return res.RowsAffected, res.Error
}
