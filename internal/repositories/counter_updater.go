package repositories

import (
	"context"
	"fmt"
	"strconv"

	"github.com/clipshelf/backend/internal/models"
	"gorm.io/gorm"
)

// CounterUpdater maintains denormalized counters on owning entities. Every
// call is paired 1:1 with a successful edge create (+1) or delete (-1), so
// counters never go negative by construction. Adjust errors are fatal to
// the triggering request, unlike the best-effort fan-out.
type CounterUpdater interface {
	Adjust(ctx context.Context, entityKind models.SubjectKind, entityID string, field string, delta int) error
}

// VideoCounterStore is the Mongo-side half of the counter updater; the
// video repository implements it with $inc.
type VideoCounterStore interface {
	AdjustCounter(ctx context.Context, videoID string, field string, delta int) error
}

// counterFields allow-lists the adjustable field per entity kind. The field
// name is interpolated into SQL, so it must come from this table.
var counterFields = map[models.SubjectKind]map[string]bool{
	models.SubjectUser:       {"follower_count": true, "following_count": true},
	models.SubjectCollection: {"like_count": true, "video_count": true},
	models.SubjectVideo:      {"like_count": true, "comment_count": true},
}

// StoreCounterUpdater routes counter adjustments to the store owning the
// entity: GORM atomic updates for Postgres kinds, $inc for videos.
type StoreCounterUpdater struct {
	db     *gorm.DB
	videos VideoCounterStore
}

// NewStoreCounterUpdater creates a new StoreCounterUpdater
func NewStoreCounterUpdater(db *gorm.DB, videos VideoCounterStore) *StoreCounterUpdater {
	return &StoreCounterUpdater{db: db, videos: videos}
}

// Adjust applies an atomic ±1 to the named counter. The increment happens
// at the store (UPDATE ... SET f = f + delta / $inc), never as an
// application-level read-modify-write.
func (u *StoreCounterUpdater) Adjust(ctx context.Context, entityKind models.SubjectKind, entityID string, field string, delta int) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("counter delta must be +1 or -1, got %d", delta)
	}
	allowed, ok := counterFields[entityKind]
	if !ok || !allowed[field] {
		return fmt.Errorf("no counter %q on entity kind %q", field, entityKind)
	}

	if entityKind == models.SubjectVideo {
		return u.videos.AdjustCounter(ctx, entityID, field, delta)
	}

	id, err := strconv.ParseUint(entityID, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid %s ID %q: %w", entityKind, entityID, err)
	}

	var model interface{}
	switch entityKind {
	case models.SubjectUser:
		model = &models.User{}
	case models.SubjectCollection:
		model = &models.Collection{}
	default:
		return fmt.Errorf("entity kind %q has no counter store", entityKind)
	}

	res := u.db.WithContext(ctx).Model(model).Where("id = ?", uint(id)).
		UpdateColumn(field, gorm.Expr(field+" + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
