package events

import "github.com/clipshelf/backend/internal/models"

// Kind identifies one of the primary social actions the fan-out engine
// knows how to route. The set is closed; unknown kinds are logged and
// dropped.
type Kind string

const (
	KindCollectionLiked   Kind = "collection-liked"
	KindVideoLiked        Kind = "video-liked"
	KindCommentAdded      Kind = "comment-added"
	KindUserFollowed      Kind = "user-followed"
	KindCollectionCreated Kind = "collection-created"
	KindVideoAdded        Kind = "video-added"
	KindCollectionShared  Kind = "collection-shared"
)

// Event is the typed payload a primary-action handler hands to the
// orchestrator after committing its own write. Visibility and TargetUserID
// are optional; when unset the per-kind route and the subject's owner fill
// them in.
type Event struct {
	Kind         Kind
	ActorID      uint
	Subject      models.SubjectRef
	TargetUserID uint
	Visibility   string
	Extra        models.Properties
}

// route is the per-kind fan-out recipe: which activity action and
// notification type the event maps to, and the phrase shown to the
// recipient.
type route struct {
	action     string
	notifType  string
	phrase     string
	visibility string
}

var routes = map[Kind]route{
	KindCollectionLiked: {
		action:     models.ActionCollectionLiked,
		notifType:  models.NotifCollectionLiked,
		phrase:     "liked your collection",
		visibility: models.VisibilityPublic,
	},
	KindVideoLiked: {
		action:     models.ActionVideoLiked,
		notifType:  models.NotifVideoLiked,
		phrase:     "liked your video",
		visibility: models.VisibilityPublic,
	},
	KindCommentAdded: {
		action:     models.ActionCommentAdded,
		notifType:  models.NotifCommentAdded,
		phrase:     "commented on your video",
		visibility: models.VisibilityPublic,
	},
	KindUserFollowed: {
		action:     models.ActionUserFollowed,
		notifType:  models.NotifUserFollowed,
		phrase:     "started following you",
		visibility: models.VisibilityPublic,
	},
	KindCollectionCreated: {
		action:     models.ActionCollectionCreated,
		notifType:  models.NotifCollectionCreated,
		phrase:     "created a collection",
		visibility: models.VisibilityPublic,
	},
	KindVideoAdded: {
		action:     models.ActionVideoAdded,
		notifType:  models.NotifVideoAdded,
		phrase:     "added a video",
		visibility: models.VisibilityPublic,
	},
	KindCollectionShared: {
		action:     models.ActionCollectionShared,
		notifType:  models.NotifCollectionShared,
		phrase:     "shared your collection",
		visibility: models.VisibilityPublic,
	},
}
