package models

import "time"

// Activity action strings, one per primary social action.
const (
	ActionCollectionCreated = "collection.created"
	ActionCollectionLiked   = "collection.liked"
	ActionCollectionShared  = "collection.shared"
	ActionVideoAdded        = "video.added"
	ActionVideoLiked        = "video.liked"
	ActionCommentAdded      = "comment.added"
	ActionUserFollowed      = "user.followed"
)

// Activity visibility values.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// PropOtherContributors is the properties key under which read-time
// aggregation stores the display names of the merged records' other actors.
const PropOtherContributors = "other_contributors"

// Properties is the open key/value payload attached to an activity record,
// e.g. the subject title captured at write time.
type Properties map[string]interface{}

// Activity is one immutable feed entry (PostgreSQL). Rows are never updated
// in place; duplicate aggregation happens only in the read path, on the
// fetched page.
type Activity struct {
	ID              uint       `json:"id" gorm:"primaryKey"`
	ActorID         uint       `json:"actor_id" gorm:"index"`
	Action          string     `json:"action" gorm:"size:40;index"`
	SubjectKind     string     `json:"subject_kind" gorm:"size:20;index:idx_activity_subject"`
	SubjectID       string     `json:"subject_id" gorm:"size:40;index:idx_activity_subject"`
	TargetUserID    uint       `json:"target_user_id,omitempty" gorm:"index"` // 0 = not about anyone
	Visibility      string     `json:"visibility" gorm:"size:10;index;default:'public'"`
	Properties      Properties `json:"properties" gorm:"serializer:json"`
	AggregatedCount int        `json:"aggregated_count" gorm:"default:1"`
	CreatedAt       time.Time  `json:"created_at" gorm:"index"`
}

// SubjectRef returns the record's polymorphic subject reference.
func (a *Activity) SubjectRef() SubjectRef {
	return SubjectRef{Kind: SubjectKind(a.SubjectKind), ID: a.SubjectID}
}

// ActivityStat is one row of the per-user activity summary.
type ActivityStat struct {
	Action string `json:"action"`
	Count  int64  `json:"count"`
}

// TrendingPeriod bounds the trending feed window.
type TrendingPeriod string

const (
	PeriodHour  TrendingPeriod = "hour"
	PeriodDay   TrendingPeriod = "day"
	PeriodWeek  TrendingPeriod = "week"
	PeriodMonth TrendingPeriod = "month"
	PeriodYear  TrendingPeriod = "year"
	PeriodAll   TrendingPeriod = "all"
)

// Cutoff returns the earliest created_at included in the period, relative
// to now. The zero time means no lower bound (period "all").
func (p TrendingPeriod) Cutoff(now time.Time) (time.Time, bool) {
	switch p {
	case PeriodHour:
		return now.Add(-time.Hour), true
	case PeriodDay:
		return now.AddDate(0, 0, -1), true
	case PeriodWeek:
		return now.AddDate(0, 0, -7), true
	case PeriodMonth:
		return now.AddDate(0, -1, 0), true
	case PeriodYear:
		return now.AddDate(-1, 0, 0), true
	case PeriodAll:
		return time.Time{}, true
	}
	return time.Time{}, false
}
