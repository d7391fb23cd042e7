package events

import (
	"context"
	"errors"
	"testing"

	"github.com/clipshelf/backend/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeActivities struct {
	records []*models.Activity
	err     error
}

func (f *fakeActivities) Record(activity *models.Activity) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, activity)
	return nil
}

type fakeNotifications struct {
	created []*models.Notification
	err     error
}

func (f *fakeNotifications) Create(notification *models.Notification) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, notification)
	return nil
}

type fakeUsers struct {
	users map[uint]*models.User
}

func (f *fakeUsers) GetUserByID(id uint) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("user not found")
	}
	return user, nil
}

func testResolver() *Resolver {
	r := NewResolver()
	r.Register(models.SubjectCollection, func(_ context.Context, id string) (models.Subject, error) {
		if id != "7" {
			return models.Subject{}, errors.New("collection not found")
		}
		return models.Subject{Title: "Cooking", OwnerID: 2}, nil
	})
	r.Register(models.SubjectUser, func(_ context.Context, id string) (models.Subject, error) {
		if id != "2" {
			return models.Subject{}, errors.New("user not found")
		}
		return models.Subject{Title: "Bob", OwnerID: 2}, nil
	})
	return r
}

func newTestOrchestrator(activities *fakeActivities, notifications *fakeNotifications) *Orchestrator {
	users := &fakeUsers{users: map[uint]*models.User{
		1: {ID: 1, Name: "Alice", Username: "alice"},
		2: {ID: 2, Name: "Bob", Username: "bob"},
	}}
	return NewOrchestrator(activities, notifications, users, testResolver(), zerolog.Nop())
}

func TestDispatchFansOutBothSteps(t *testing.T) {
	activities := &fakeActivities{}
	notifications := &fakeNotifications{}
	o := newTestOrchestrator(activities, notifications)

	o.Dispatch(context.Background(), Event{
		Kind:    KindCollectionLiked,
		ActorID: 1,
		Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "7"},
	})

	require.Len(t, notifications.created, 1)
	n := notifications.created[0]
	assert.Equal(t, uint(2), n.RecipientID)
	assert.Equal(t, uint(1), n.ActorID)
	assert.Equal(t, models.NotifCollectionLiked, n.Type)
	assert.Equal(t, string(models.SubjectCollection), n.SubjectKind)
	assert.Equal(t, "7", n.SubjectID)
	assert.Equal(t, "Alice", n.Data["actor_name"])
	assert.Equal(t, "Cooking", n.Data["subject_title"])
	assert.Equal(t, "Alice liked your collection", n.Data["phrase"])

	require.Len(t, activities.records, 1)
	a := activities.records[0]
	assert.Equal(t, models.ActionCollectionLiked, a.Action)
	assert.Equal(t, uint(1), a.ActorID)
	assert.Equal(t, uint(2), a.TargetUserID)
	assert.Equal(t, models.VisibilityPublic, a.Visibility)
	assert.Equal(t, "Cooking", a.Properties["subject_title"])
}

func TestDispatchSuppressesSelfNotification(t *testing.T) {
	activities := &fakeActivities{}
	notifications := &fakeNotifications{}
	o := newTestOrchestrator(activities, notifications)

	// Actor 2 owns collection 7; acting on it must not notify themselves.
	o.Dispatch(context.Background(), Event{
		Kind:    KindCollectionCreated,
		ActorID: 2,
		Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "7"},
	})

	assert.Empty(t, notifications.created)
	require.Len(t, activities.records, 1)
	// A target pointing back at the actor is dropped.
	assert.Zero(t, activities.records[0].TargetUserID)
}

func TestDispatchSuppressesSelfNotificationViaTarget(t *testing.T) {
	activities := &fakeActivities{}
	notifications := &fakeNotifications{}
	o := newTestOrchestrator(activities, notifications)

	o.Dispatch(context.Background(), Event{
		Kind:         KindUserFollowed,
		ActorID:      2,
		Subject:      models.SubjectRef{Kind: models.SubjectUser, ID: "2"},
		TargetUserID: 2,
	})

	assert.Empty(t, notifications.created)
	assert.Len(t, activities.records, 1)
}

func TestDispatchUnresolvedSubject(t *testing.T) {
	activities := &fakeActivities{}
	notifications := &fakeNotifications{}
	o := newTestOrchestrator(activities, notifications)

	o.Dispatch(context.Background(), Event{
		Kind:    KindCollectionLiked,
		ActorID: 1,
		Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "999"},
	})

	// No owner to notify, but the activity still records with a stub title.
	assert.Empty(t, notifications.created)
	require.Len(t, activities.records, 1)
	assert.Equal(t, models.SubjectUnknownTitle, activities.records[0].Properties["subject_title"])
	assert.Zero(t, activities.records[0].TargetUserID)
}

func TestDispatchUnknownActorName(t *testing.T) {
	activities := &fakeActivities{}
	notifications := &fakeNotifications{}
	o := newTestOrchestrator(activities, notifications)

	o.Dispatch(context.Background(), Event{
		Kind:    KindCollectionLiked,
		ActorID: 99,
		Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "7"},
	})

	require.Len(t, notifications.created, 1)
	assert.Equal(t, "Someone", notifications.created[0].Data["actor_name"])
}

func TestDispatchNotificationFailureStillRecordsActivity(t *testing.T) {
	activities := &fakeActivities{}
	notifications := &fakeNotifications{err: errors.New("store down")}
	o := newTestOrchestrator(activities, notifications)

	o.Dispatch(context.Background(), Event{
		Kind:    KindCollectionLiked,
		ActorID: 1,
		Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "7"},
	})

	assert.Len(t, activities.records, 1)
}

func TestDispatchActivityFailureStillNotifies(t *testing.T) {
	activities := &fakeActivities{err: errors.New("store down")}
	notifications := &fakeNotifications{}
	o := newTestOrchestrator(activities, notifications)

	o.Dispatch(context.Background(), Event{
		Kind:    KindCollectionLiked,
		ActorID: 1,
		Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "7"},
	})

	assert.Len(t, notifications.created, 1)
}

func TestDispatchUnknownKindDropped(t *testing.T) {
	activities := &fakeActivities{}
	notifications := &fakeNotifications{}
	o := newTestOrchestrator(activities, notifications)

	o.Dispatch(context.Background(), Event{
		Kind:    Kind("collection-exploded"),
		ActorID: 1,
		Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "7"},
	})

	assert.Empty(t, notifications.created)
	assert.Empty(t, activities.records)
}

func TestDispatchVisibilityOverride(t *testing.T) {
	activities := &fakeActivities{}
	notifications := &fakeNotifications{}
	o := newTestOrchestrator(activities, notifications)

	o.Dispatch(context.Background(), Event{
		Kind:       KindCollectionCreated,
		ActorID:    1,
		Subject:    models.SubjectRef{Kind: models.SubjectCollection, ID: "7"},
		Visibility: models.VisibilityPrivate,
	})

	require.Len(t, activities.records, 1)
	assert.Equal(t, models.VisibilityPrivate, activities.records[0].Visibility)
}

func TestDispatchExtraProperties(t *testing.T) {
	activities := &fakeActivities{}
	notifications := &fakeNotifications{}
	o := newTestOrchestrator(activities, notifications)

	o.Dispatch(context.Background(), Event{
		Kind:    KindCollectionShared,
		ActorID: 1,
		Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "7"},
		Extra:   models.Properties{"share_token": "abc123"},
	})

	require.Len(t, activities.records, 1)
	assert.Equal(t, "abc123", activities.records[0].Properties["share_token"])
	assert.Equal(t, "Cooking", activities.records[0].Properties["subject_title"])
}

func TestDispatchAllContinuesPastBadEvents(t *testing.T) {
	activities := &fakeActivities{}
	notifications := &fakeNotifications{}
	o := newTestOrchestrator(activities, notifications)

	o.DispatchAll(context.Background(), []Event{
		{Kind: Kind("bogus"), ActorID: 1, Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "7"}},
		{Kind: KindCollectionLiked, ActorID: 1, Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "999"}},
		{Kind: KindCollectionLiked, ActorID: 1, Subject: models.SubjectRef{Kind: models.SubjectCollection, ID: "7"}},
	})

	// The bogus kind drops, the unresolved subject still records, the good
	// event fans out fully.
	assert.Len(t, activities.records, 2)
	assert.Len(t, notifications.created, 1)
}
