package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/clipshelf/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type feedBody struct {
	Success bool `json:"success"`
	Data    struct {
		Activities []models.Activity `json:"activities"`
	} `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

func decodeFeed(t *testing.T, raw []byte) feedBody {
	t.Helper()
	var body feedBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func seedFeedActivity(t *testing.T, env *testEnv, actorID uint, action, subjectID, visibility string, createdAt time.Time) {
	t.Helper()
	require.NoError(t, env.activities.Record(&models.Activity{
		ActorID:     actorID,
		Action:      action,
		SubjectKind: string(models.SubjectCollection),
		SubjectID:   subjectID,
		Visibility:  visibility,
		Properties:  models.Properties{"subject_title": "Cooking"},
		CreatedAt:   createdAt,
	}))
}

func TestGetGlobalFeedAggregates(t *testing.T) {
	env := newTestEnv(t)
	h := NewFeedHandler(env.activities, env.users, env.follows)
	alice := env.seedUser(t, "Alice", "alice")
	bob := env.seedUser(t, "Bob", "bob")
	carol := env.seedUser(t, "Carol", "carol")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	// Three likes of the same collection collapse to one aggregated row.
	seedFeedActivity(t, env, alice.ID, models.ActionCollectionLiked, "7", models.VisibilityPublic, base)
	seedFeedActivity(t, env, bob.ID, models.ActionCollectionLiked, "7", models.VisibilityPublic, base.Add(time.Minute))
	seedFeedActivity(t, env, carol.ID, models.ActionCollectionLiked, "7", models.VisibilityPublic, base.Add(2*time.Minute))
	seedFeedActivity(t, env, alice.ID, models.ActionVideoAdded, "7", models.VisibilityPublic, base.Add(3*time.Minute))

	c, rec := env.request(http.MethodGet, "/feed/global", 0, "")
	require.NoError(t, h.GetGlobalFeed(c))
	body := decodeFeed(t, rec.Body.Bytes())

	require.Len(t, body.Data.Activities, 2)
	assert.Equal(t, models.ActionVideoAdded, body.Data.Activities[0].Action)

	merged := body.Data.Activities[1]
	assert.Equal(t, 3, merged.AggregatedCount)
	assert.Equal(t, carol.ID, merged.ActorID)
	others, ok := merged.Properties[models.PropOtherContributors].([]interface{})
	require.True(t, ok)
	assert.ElementsMatch(t, []interface{}{"Alice", "Bob"}, others)

	// The meta total counts raw rows, not aggregated ones.
	assert.EqualValues(t, 4, body.Meta["total"])
}

func TestGetFeedPersonalized(t *testing.T) {
	env := newTestEnv(t)
	h := NewFeedHandler(env.activities, env.users, env.follows)
	alice := env.seedUser(t, "Alice", "alice")
	bob := env.seedUser(t, "Bob", "bob")
	carol := env.seedUser(t, "Carol", "carol")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, env.follows.CreateFollow(&models.Follow{FollowerID: alice.ID, FollowingID: bob.ID}))

	seedFeedActivity(t, env, alice.ID, models.ActionCollectionCreated, "1", models.VisibilityPublic, base)
	seedFeedActivity(t, env, bob.ID, models.ActionCollectionCreated, "2", models.VisibilityPrivate, base)
	seedFeedActivity(t, env, carol.ID, models.ActionCollectionCreated, "3", models.VisibilityPrivate, base)

	c, rec := env.request(http.MethodGet, "/feed", alice.ID, "")
	require.NoError(t, h.GetFeed(c))
	body := decodeFeed(t, rec.Body.Bytes())

	// Own actions and strangers' private actions are excluded.
	require.Len(t, body.Data.Activities, 1)
	assert.Equal(t, bob.ID, body.Data.Activities[0].ActorID)
}

func TestGetTrendingFeedPeriod(t *testing.T) {
	env := newTestEnv(t)
	h := NewFeedHandler(env.activities, env.users, env.follows)
	alice := env.seedUser(t, "Alice", "alice")

	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	timeNow = func() time.Time { return now }
	defer func() { timeNow = time.Now }()

	seedFeedActivity(t, env, alice.ID, models.ActionCollectionLiked, "1", models.VisibilityPublic, now.Add(-30*time.Minute))
	seedFeedActivity(t, env, alice.ID, models.ActionCollectionLiked, "2", models.VisibilityPublic, now.Add(-6*time.Hour))

	c, rec := env.request(http.MethodGet, "/feed/trending?period=hour", 0, "")
	require.NoError(t, h.GetTrendingFeed(c))
	body := decodeFeed(t, rec.Body.Bytes())

	require.Len(t, body.Data.Activities, 1)
	assert.Equal(t, "1", body.Data.Activities[0].SubjectID)
	assert.Equal(t, "hour", body.Meta["period"])
	// Trending pages carry no total count.
	_, hasTotal := body.Meta["total"]
	assert.False(t, hasTotal)
}

func TestGetTrendingFeedInvalidPeriod(t *testing.T) {
	env := newTestEnv(t)
	h := NewFeedHandler(env.activities, env.users, env.follows)

	c, rec := env.request(http.MethodGet, "/feed/trending?period=fortnight", 0, "")
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, h.GetTrendingFeed(c), rec))
}

func TestGetFilteredFeedValidation(t *testing.T) {
	env := newTestEnv(t)
	h := NewFeedHandler(env.activities, env.users, env.follows)

	c, rec := env.request(http.MethodGet, "/feed/filtered?subject_kind=banana", 0, "")
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, h.GetFilteredFeed(c), rec))

	c, rec = env.request(http.MethodGet, "/feed/filtered?actor_id=abc", 0, "")
	assert.Equal(t, http.StatusBadRequest, httpStatus(t, h.GetFilteredFeed(c), rec))
}

func TestGetUserPublicFeed(t *testing.T) {
	env := newTestEnv(t)
	h := NewFeedHandler(env.activities, env.users, env.follows)
	alice := env.seedUser(t, "Alice", "alice")
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	seedFeedActivity(t, env, alice.ID, models.ActionCollectionCreated, "1", models.VisibilityPublic, base)
	seedFeedActivity(t, env, alice.ID, models.ActionCollectionCreated, "2", models.VisibilityPrivate, base)

	c, rec := env.request(http.MethodGet, "/feed/users/alice", 0, "")
	c.SetParamNames("username")
	c.SetParamValues("alice")
	require.NoError(t, h.GetUserPublicFeed(c))
	body := decodeFeed(t, rec.Body.Bytes())
	require.Len(t, body.Data.Activities, 1)
	assert.Equal(t, "1", body.Data.Activities[0].SubjectID)

	c, rec = env.request(http.MethodGet, "/feed/users/nobody", 0, "")
	c.SetParamNames("username")
	c.SetParamValues("nobody")
	assert.Equal(t, http.StatusNotFound, httpStatus(t, h.GetUserPublicFeed(c), rec))
}
