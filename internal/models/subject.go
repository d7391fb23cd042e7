package models

// SubjectKind identifies which entity table a polymorphic reference points at.
type SubjectKind string

const (
	SubjectUser       SubjectKind = "user"
	SubjectCollection SubjectKind = "collection"
	SubjectVideo      SubjectKind = "video"
	SubjectComment    SubjectKind = "comment"
)

// ValidSubjectKind reports whether s is one of the known subject kinds.
func ValidSubjectKind(s string) bool {
	switch SubjectKind(s) {
	case SubjectUser, SubjectCollection, SubjectVideo, SubjectComment:
		return true
	}
	return false
}

// SubjectRef is a polymorphic (kind, id) reference to the entity an action
// was about. IDs are strings so the same shape covers Postgres integer IDs
// and Mongo ObjectID hex strings.
type SubjectRef struct {
	Kind SubjectKind `json:"kind"`
	ID   string      `json:"id"`
}

// Ownable is the capability a subject variant implements when it has a
// single owning user. Absence of the capability means "no owner"; the
// fan-out engine then skips the notification step.
type Ownable interface {
	Owner() uint
}

// Subject is a resolved subject reference: the display title captured at
// resolution time plus the owning user, if any. A deleted or unknown
// subject degrades to a stub with Title "Unknown" and OwnerID 0.
type Subject struct {
	Ref     SubjectRef
	Title   string
	OwnerID uint
}

// SubjectUnknownTitle is the stub title used when a subject reference no
// longer resolves to a live entity.
const SubjectUnknownTitle = "Unknown"
