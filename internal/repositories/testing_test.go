package repositories

import (
	"testing"

	"github.com/clipshelf/backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory sqlite database with the full schema. A
// single connection keeps every query on the same in-memory store.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Collection{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.CollectionShare{},
		&models.Activity{},
		&models.Notification{},
	))
	return db
}

// seedUser inserts a user and returns it.
func seedUser(t *testing.T, db *gorm.DB, name, username string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}
