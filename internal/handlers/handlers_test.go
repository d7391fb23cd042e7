package handlers

import (
	"context"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/clipshelf/backend/internal/events"
	"github.com/clipshelf/backend/internal/models"
	"github.com/clipshelf/backend/internal/repositories"
	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testEnv wires the handler stack over an in-memory sqlite database. Videos
// stay behind a no-op counter store since they live in Mongo in production.
type testEnv struct {
	db            *gorm.DB
	echo          *echo.Echo
	users         repositories.UserRepository
	follows       repositories.FollowRepository
	notifications repositories.NotificationRepository
	activities    repositories.ActivityRepository
	orchestrator  *events.Orchestrator
	counters      repositories.CounterUpdater
}

type noopVideoCounters struct{}

func (noopVideoCounters) AdjustCounter(context.Context, string, string, int) error { return nil }

func newTestEnv(t *testing.T) *testEnv {
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

	users := repositories.NewPostgresUserRepository(db)
	collections := repositories.NewPostgresCollectionRepository(db)
	activities := repositories.NewPostgresActivityRepository(db)
	notifications := repositories.NewPostgresNotificationRepository(db)

	resolver := events.NewResolver()
	resolver.Register(models.SubjectUser, func(_ context.Context, id string) (models.Subject, error) {
		uid, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			return models.Subject{}, err
		}
		user, err := users.GetUserByID(uint(uid))
		if err != nil {
			return models.Subject{}, err
		}
		return models.Subject{Title: user.DisplayName(), OwnerID: user.Owner()}, nil
	})
	resolver.Register(models.SubjectCollection, func(_ context.Context, id string) (models.Subject, error) {
		cid, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			return models.Subject{}, err
		}
		collection, err := collections.GetCollectionByID(uint(cid))
		if err != nil {
			return models.Subject{}, err
		}
		return models.Subject{Title: collection.Title, OwnerID: collection.Owner()}, nil
	})

	return &testEnv{
		db:            db,
		echo:          echo.New(),
		users:         users,
		follows:       repositories.NewPostgresFollowRepository(db),
		notifications: notifications,
		activities:    activities,
		orchestrator:  events.NewOrchestrator(activities, notifications, users, resolver, zerolog.Nop()),
		counters:      repositories.NewStoreCounterUpdater(db, noopVideoCounters{}),
	}
}

func (env *testEnv) seedUser(t *testing.T, name, username string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Username: username, Email: username + "@example.com"}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

// request builds an authenticated echo context the way the JWT middleware
// would have, with optional :id route param.
func (env *testEnv) request(method, target string, userID uint, paramID string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	if userID != 0 {
		c.Set("user", &models.JwtCustomClaims{UserID: userID})
	}
	if paramID != "" {
		c.SetParamNames("id")
		c.SetParamValues(paramID)
	}
	return c, rec
}

// httpStatus extracts the status a handler outcome would produce.
func httpStatus(t *testing.T, err error, rec *httptest.ResponseRecorder) int {
	t.Helper()
	if err == nil {
		return rec.Code
	}
	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}
