package members

import "errors"

// ErrNotFound is returned by Repo lookups when no member exists for the
// given email.
var ErrNotFound = errors.New("member not found")

// Repo is durable keyed storage of member records. Members are only ever
// inserted or updated; withdrawal is a soft delete so records are never
// removed.
type Repo interface {
	GetByEmail(email string) (*Member, error)
	Save(member *Member) error
}
