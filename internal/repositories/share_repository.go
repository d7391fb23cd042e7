package repositories

import (
	"errors"

	"github.com/clipshelf/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ShareRepository defines the interface for collection share links
type ShareRepository interface {
	CreateShare(collectionID, userID uint) (*models.CollectionShare, error)
	GetShareByToken(token string) (*models.CollectionShare, error)
	GetSharesByCollectionID(collectionID uint) ([]models.CollectionShare, error)
}

// PostgresShareRepository implements ShareRepository for PostgreSQL
type PostgresShareRepository struct {
	db *gorm.DB
}

// NewPostgresShareRepository creates a new PostgresShareRepository
func NewPostgresShareRepository(db *gorm.DB) *PostgresShareRepository {
	return &PostgresShareRepository{db: db}
}

// CreateShare mints a share link with a fresh UUID token.
func (r *PostgresShareRepository) CreateShare(collectionID, userID uint) (*models.CollectionShare, error) {
	share := &models.CollectionShare{
		CollectionID: collectionID,
		UserID:       userID,
		Token:        uuid.NewString(),
	}
	if err := r.db.Create(share).Error; err != nil {
		return nil, err
	}
	return share, nil
}

func (r *PostgresShareRepository) GetShareByToken(token string) (*models.CollectionShare, error) {
	var share models.CollectionShare
	if err := r.db.Where("token = ?", token).First(&share).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &share, nil
}

func (r *PostgresShareRepository) GetSharesByCollectionID(collectionID uint) ([]models.CollectionShare, error) {
	var shares []models.CollectionShare
	err := r.db.Where("collection_id = ?", collectionID).Order("created_at DESC").Find(&shares).Error
	return shares, err
}
