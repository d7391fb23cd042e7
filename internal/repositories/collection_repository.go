package repositories

import (
	"errors"

	"github.com/clipshelf/backend/internal/models"
	"gorm.io/gorm"
)

// CollectionRepository defines the interface for collection data operations
type CollectionRepository interface {
	CreateCollection(collection *models.Collection) error
	GetCollectionByID(id uint) (*models.Collection, error)
	GetCollectionsByUserID(userID uint) ([]models.Collection, error)
	UpdateCollection(collection *models.Collection) error
	DeleteCollection(id uint) error
}

// PostgresCollectionRepository implements CollectionRepository for PostgreSQL
type PostgresCollectionRepository struct {
	db *gorm.DB
}

// NewPostgresCollectionRepository creates a new PostgresCollectionRepository
func NewPostgresCollectionRepository(db *gorm.DB) *PostgresCollectionRepository {
	return &PostgresCollectionRepository{db: db}
}

func (r *PostgresCollectionRepository) CreateCollection(collection *models.Collection) error {
	return r.db.Create(collection).Error
}

func (r *PostgresCollectionRepository) GetCollectionByID(id uint) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.First(&collection, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &collection, nil
}

func (r *PostgresCollectionRepository) GetCollectionsByUserID(userID uint) ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&collections).Error
	return collections, err
}

func (r *PostgresCollectionRepository) UpdateCollection(collection *models.Collection) error {
	return r.db.Save(collection).Error
}

func (r *PostgresCollectionRepository) DeleteCollection(id uint) error {
	res := r.db.Delete(&models.Collection{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
