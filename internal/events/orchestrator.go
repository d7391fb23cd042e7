package events

import (
	"context"
	"fmt"

	"github.com/clipshelf/backend/internal/models"
	"github.com/rs/zerolog"
)

// ActivityRecorder is the slice of the activity store the orchestrator
// writes through.
type ActivityRecorder interface {
	Record(activity *models.Activity) error
}

// NotificationStore is the slice of the notification store the orchestrator
// writes through.
type NotificationStore interface {
	Create(notification *models.Notification) error
}

// actorLookup fetches the acting user for display-name snapshots.
type actorLookup interface {
	GetUserByID(id uint) (*models.User, error)
}

// Orchestrator fans a committed primary action out into a notification and
// an activity record. Both steps are best-effort: their errors are logged
// with the event context and swallowed, never returned to the caller, and
// a failure in one step never stops the other. Counters are NOT adjusted
// here; the primary-action handler owns them because they must stay
// consistent with the edge even when fan-out fails.
type Orchestrator struct {
	activities    ActivityRecorder
	notifications NotificationStore
	users         actorLookup
	resolver      *Resolver
	log           zerolog.Logger
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(activities ActivityRecorder, notifications NotificationStore, users actorLookup, resolver *Resolver, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		activities:    activities,
		notifications: notifications,
		users:         users,
		resolver:      resolver,
		log:           log,
	}
}

// Dispatch runs the single-shot fan-out for one event: notification first,
// then activity, each attempted regardless of the other's outcome. It never
// returns an error; from the caller's perspective dispatch is
// fire-and-forget.
func (o *Orchestrator) Dispatch(ctx context.Context, event Event) {
	rt, ok := routes[event.Kind]
	if !ok {
		o.log.Error().Str("event", string(event.Kind)).Msg("unknown event kind, dropping")
		return
	}

	subject := o.resolver.Resolve(ctx, event.Subject)
	actorName := o.actorName(event.ActorID)

	if err := o.notify(event, rt, subject, actorName); err != nil {
		o.logStepFailure("notification", event, err)
	}
	if err := o.record(event, rt, subject); err != nil {
		o.logStepFailure("activity", event, err)
	}
}

// DispatchAll applies the same per-event isolation to a heterogeneous
// batch; one bad event never aborts the rest.
func (o *Orchestrator) DispatchAll(ctx context.Context, batch []Event) {
	for _, event := range batch {
		o.Dispatch(ctx, event)
	}
}

// notify creates the notification for the subject's owner. Self-actions and
// ownerless subjects produce no notification.
func (o *Orchestrator) notify(event Event, rt route, subject models.Subject, actorName string) error {
	recipient := event.TargetUserID
	if recipient == 0 {
		recipient = subject.OwnerID
	}
	if recipient == 0 {
		// Unresolved owner: skip the notification, the activity still runs.
		return nil
	}
	if recipient == event.ActorID {
		// Self-notification, suppressed at creation.
		return nil
	}

	return o.notifications.Create(&models.Notification{
		RecipientID: recipient,
		ActorID:     event.ActorID,
		Type:        rt.notifType,
		SubjectKind: string(subject.Ref.Kind),
		SubjectID:   subject.Ref.ID,
		Data: models.NotificationData{
			"actor_name":    actorName,
			"subject_title": subject.Title,
			"phrase":        fmt.Sprintf("%s %s", actorName, rt.phrase),
		},
	})
}

// record appends the activity row. A target pointing back at the actor is
// dropped so own actions never show up in the actor's targeted feed.
func (o *Orchestrator) record(event Event, rt route, subject models.Subject) error {
	visibility := event.Visibility
	if visibility == "" {
		visibility = rt.visibility
	}

	target := event.TargetUserID
	if target == 0 {
		target = subject.OwnerID
	}
	if target == event.ActorID {
		target = 0
	}

	properties := models.Properties{"subject_title": subject.Title}
	for k, v := range event.Extra {
		properties[k] = v
	}

	return o.activities.Record(&models.Activity{
		ActorID:      event.ActorID,
		Action:       rt.action,
		SubjectKind:  string(subject.Ref.Kind),
		SubjectID:    subject.Ref.ID,
		TargetUserID: target,
		Visibility:   visibility,
		Properties:   properties,
	})
}

func (o *Orchestrator) actorName(actorID uint) string {
	user, err := o.users.GetUserByID(actorID)
	if err != nil {
		return "Someone"
	}
	return user.DisplayName()
}

func (o *Orchestrator) logStepFailure(step string, event Event, err error) {
	o.log.Error().
		Err(err).
		Str("step", step).
		Str("event", string(event.Kind)).
		Uint("actor_id", event.ActorID).
		Str("subject_kind", string(event.Subject.Kind)).
		Str("subject_id", event.Subject.ID).
		Msg("fan-out step failed, continuing")
}
