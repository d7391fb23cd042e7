package events

import (
	"context"
	"strconv"

	"github.com/clipshelf/backend/internal/models"
	"github.com/clipshelf/backend/internal/repositories"
)

// ResolveFunc resolves one subject kind's ID to a title and owner.
type ResolveFunc func(ctx context.Context, id string) (models.Subject, error)

// Resolver maps subject kinds to their fetch functions. Kinds without a
// registered function, and references whose entity no longer exists,
// degrade to the "Unknown" stub instead of erroring.
type Resolver struct {
	funcs map[models.SubjectKind]ResolveFunc
}

// NewResolver creates an empty Resolver
func NewResolver() *Resolver {
	return &Resolver{funcs: make(map[models.SubjectKind]ResolveFunc)}
}

// Register installs the fetch function for a subject kind.
func (r *Resolver) Register(kind models.SubjectKind, fn ResolveFunc) {
	r.funcs[kind] = fn
}

// Resolve resolves a subject reference, degrading to a stub with title
// "Unknown" and no owner when the kind is unregistered or the entity is
// gone.
func (r *Resolver) Resolve(ctx context.Context, ref models.SubjectRef) models.Subject {
	stub := models.Subject{Ref: ref, Title: models.SubjectUnknownTitle}
	fn, ok := r.funcs[ref.Kind]
	if !ok {
		return stub
	}
	subject, err := fn(ctx, ref.ID)
	if err != nil {
		return stub
	}
	subject.Ref = ref
	return subject
}

// NewStoreResolver wires a Resolver over the entity repositories, one fetch
// function per subject kind.
func NewStoreResolver(
	users repositories.UserRepository,
	collections repositories.CollectionRepository,
	videos repositories.VideoRepository,
	comments repositories.CommentRepository,
) *Resolver {
	r := NewResolver()

	r.Register(models.SubjectUser, func(ctx context.Context, id string) (models.Subject, error) {
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

	r.Register(models.SubjectCollection, func(ctx context.Context, id string) (models.Subject, error) {
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

	r.Register(models.SubjectVideo, func(ctx context.Context, id string) (models.Subject, error) {
		video, err := videos.GetVideoByID(ctx, id)
		if err != nil {
			return models.Subject{}, err
		}
		return models.Subject{Title: video.Title, OwnerID: video.Owner()}, nil
	})

	r.Register(models.SubjectComment, func(ctx context.Context, id string) (models.Subject, error) {
		cid, err := strconv.ParseUint(id, 10, 32)
		if err != nil {
			return models.Subject{}, err
		}
		comment, err := comments.GetCommentByID(uint(cid))
		if err != nil {
			return models.Subject{}, err
		}
		return models.Subject{Title: comment.Body, OwnerID: comment.Owner()}, nil
	})

	return r
}
