package repositories

import (
	"testing"
	"time"

	"github.com/clipshelf/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedActivity(t *testing.T, repo ActivityRepository, actorID uint, action, visibility string, targetUserID uint, createdAt time.Time) *models.Activity {
	t.Helper()
	activity := &models.Activity{
		ActorID:      actorID,
		Action:       action,
		SubjectKind:  string(models.SubjectCollection),
		SubjectID:    "1",
		TargetUserID: targetUserID,
		Visibility:   visibility,
		CreatedAt:    createdAt,
	}
	require.NoError(t, repo.Record(activity))
	return activity
}

func TestRecordDefaultsAggregatedCount(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)

	activity := &models.Activity{ActorID: 1, Action: models.ActionCollectionCreated, Visibility: models.VisibilityPublic}
	require.NoError(t, repo.Record(activity))
	assert.Equal(t, 1, activity.AggregatedCount)
}

func TestPersonalizedWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Viewer is user 1, following user 2.
	seedActivity(t, repo, 1, models.ActionCollectionCreated, models.VisibilityPublic, 0, base)        // own, excluded
	followed := seedActivity(t, repo, 2, models.ActionVideoAdded, models.VisibilityPrivate, 0, base) // followed actor, included despite private
	public := seedActivity(t, repo, 3, models.ActionCollectionLiked, models.VisibilityPublic, 0, base.Add(time.Minute))
	targeted := seedActivity(t, repo, 4, models.ActionUserFollowed, models.VisibilityPrivate, 1, base.Add(2*time.Minute))
	seedActivity(t, repo, 4, models.ActionUserFollowed, models.VisibilityPrivate, 5, base) // private, about someone else

	window, total, err := repo.PersonalizedWindow(1, []uint{2}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, window, 3)
	assert.Equal(t, targeted.ID, window[0].ID)
	assert.Equal(t, public.ID, window[1].ID)
	assert.Equal(t, followed.ID, window[2].ID)
}

func TestPersonalizedWindowNoFollowing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedActivity(t, repo, 2, models.ActionVideoAdded, models.VisibilityPrivate, 0, base)
	public := seedActivity(t, repo, 3, models.ActionCollectionLiked, models.VisibilityPublic, 0, base)

	window, total, err := repo.PersonalizedWindow(1, nil, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, window, 1)
	assert.Equal(t, public.ID, window[0].ID)
}

func TestGlobalWindowPublicOnly(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedActivity(t, repo, 1, models.ActionCollectionCreated, models.VisibilityPrivate, 0, base)
	public := seedActivity(t, repo, 2, models.ActionCollectionCreated, models.VisibilityPublic, 0, base)

	window, total, err := repo.GlobalWindow(0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, window, 1)
	assert.Equal(t, public.ID, window[0].ID)
}

func TestOwnWindowIncludesPrivate(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedActivity(t, repo, 1, models.ActionCollectionCreated, models.VisibilityPublic, 0, base)
	seedActivity(t, repo, 1, models.ActionVideoAdded, models.VisibilityPrivate, 0, base.Add(time.Minute))
	seedActivity(t, repo, 2, models.ActionCollectionCreated, models.VisibilityPublic, 0, base)

	window, total, err := repo.OwnWindow(1, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, window, 2)
}

func TestTargetedWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	about := seedActivity(t, repo, 2, models.ActionUserFollowed, models.VisibilityPublic, 1, base)
	seedActivity(t, repo, 2, models.ActionUserFollowed, models.VisibilityPublic, 3, base)

	window, total, err := repo.TargetedWindow(1, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, window, 1)
	assert.Equal(t, about.ID, window[0].ID)
}

func TestActorPublicWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	public := seedActivity(t, repo, 1, models.ActionCollectionCreated, models.VisibilityPublic, 0, base)
	seedActivity(t, repo, 1, models.ActionVideoAdded, models.VisibilityPrivate, 0, base)

	window, total, err := repo.ActorPublicWindow(1, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, window, 1)
	assert.Equal(t, public.ID, window[0].ID)
}

func TestFilteredWindow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	liked := seedActivity(t, repo, 1, models.ActionCollectionLiked, models.VisibilityPublic, 0, base)
	seedActivity(t, repo, 1, models.ActionCollectionCreated, models.VisibilityPublic, 0, base)
	seedActivity(t, repo, 2, models.ActionCollectionLiked, models.VisibilityPublic, 0, base)
	seedActivity(t, repo, 1, models.ActionCollectionLiked, models.VisibilityPrivate, 0, base)

	window, total, err := repo.FilteredWindow(ActivityFilter{Action: models.ActionCollectionLiked, ActorID: 1}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, window, 1)
	assert.Equal(t, liked.ID, window[0].ID)

	// No filters: every public record.
	_, total, err = repo.FilteredWindow(ActivityFilter{}, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
}

func TestTrendingWindowCutoff(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedActivity(t, repo, 1, models.ActionCollectionLiked, models.VisibilityPublic, 0, base.Add(-48*time.Hour))
	recent := seedActivity(t, repo, 2, models.ActionCollectionLiked, models.VisibilityPublic, 0, base.Add(-time.Hour))
	seedActivity(t, repo, 3, models.ActionCollectionLiked, models.VisibilityPrivate, 0, base)

	window, err := repo.TrendingWindow(base.AddDate(0, 0, -1), 0, 10)
	require.NoError(t, err)
	require.Len(t, window, 1)
	assert.Equal(t, recent.ID, window[0].ID)

	// Zero since means no lower bound; private rows still excluded.
	window, err = repo.TrendingWindow(time.Time{}, 0, 10)
	require.NoError(t, err)
	assert.Len(t, window, 2)
}

func TestWindowPagination(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		seedActivity(t, repo, 1, models.ActionCollectionCreated, models.VisibilityPublic, 0, base.Add(time.Duration(i)*time.Minute))
	}

	first, total, err := repo.GlobalWindow(0, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, first, 2)

	second, _, err := repo.GlobalWindow(2, 2)
	require.NoError(t, err)
	require.Len(t, second, 2)

	// Pages are disjoint and newest-first.
	assert.True(t, first[1].CreatedAt.After(second[0].CreatedAt))
}

func TestStatsByActor(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedActivity(t, repo, 1, models.ActionCollectionLiked, models.VisibilityPublic, 0, base)
	seedActivity(t, repo, 1, models.ActionCollectionLiked, models.VisibilityPublic, 0, base)
	seedActivity(t, repo, 1, models.ActionVideoAdded, models.VisibilityPublic, 0, base)
	seedActivity(t, repo, 2, models.ActionVideoAdded, models.VisibilityPublic, 0, base)

	stats, err := repo.StatsByActor(1)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, models.ActivityStat{Action: models.ActionCollectionLiked, Count: 2}, stats[0])
	assert.Equal(t, models.ActivityStat{Action: models.ActionVideoAdded, Count: 1}, stats[1])
}

func TestActivityDeleteOlderThan(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresActivityRepository(db)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedActivity(t, repo, 1, models.ActionCollectionCreated, models.VisibilityPublic, 0, base.AddDate(0, 0, -100))
	kept := seedActivity(t, repo, 1, models.ActionCollectionCreated, models.VisibilityPublic, 0, base)

	deleted, err := repo.DeleteOlderThan(base.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	window, total, err := repo.OwnWindow(1, 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, window, 1)
	assert.Equal(t, kept.ID, window[0].ID)

	// Idempotent: nothing left to purge.
	deleted, err = repo.DeleteOlderThan(base.AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
