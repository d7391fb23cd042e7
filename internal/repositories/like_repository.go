package repositories

import (
	"github.com/clipshelf/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LikeRepository defines the interface for like edge operations. The edge is
// polymorphic over the likeable entity: (user, likeable_kind, likeable_id)
// is a unique triple.
type LikeRepository interface {
	CreateLike(like *models.Like) error
	DeleteLike(userID uint, likeableKind models.SubjectKind, likeableID string) error
	HasLiked(userID uint, likeableKind models.SubjectKind, likeableID string) (bool, error)
	CountFor(likeableKind models.SubjectKind, likeableID string) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// CreateLike inserts a like edge. Duplicates resolve through the unique
// triple index; the conflicting insert observes ErrAlreadyExists.
func (r *PostgresLikeRepository) CreateLike(like *models.Like) error {
	res := r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrAlreadyExists
	}
	return nil
}

// DeleteLike removes a like edge; ErrNotFound when no edge existed.
func (r *PostgresLikeRepository) DeleteLike(userID uint, likeableKind models.SubjectKind, likeableID string) error {
	res := r.db.Where("user_id = ? AND likeable_kind = ? AND likeable_id = ?", userID, likeableKind, likeableID).Delete(&models.Like{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// HasLiked checks whether the user already likes the entity.
func (r *PostgresLikeRepository) HasLiked(userID uint, likeableKind models.SubjectKind, likeableID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("user_id = ? AND likeable_kind = ? AND likeable_id = ?", userID, likeableKind, likeableID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountFor counts the live like edges referencing an entity. Used only by
// the counter repair path; the serving value lives on the entity itself.
func (r *PostgresLikeRepository) CountFor(likeableKind models.SubjectKind, likeableID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("likeable_kind = ? AND likeable_id = ?", likeableKind, likeableID).Count(&count).Error
	return count, err
}
