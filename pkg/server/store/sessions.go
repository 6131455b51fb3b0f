package store

import "github.com/cidadeviva/edu-admissions/pkg/model"

// SessionsStore abstracts session row storage. A session token is only
// valid while its row exists; Delete is the revocation primitive.
type SessionsStore interface {
	// Create inserts a new session row
	Create(session *model.Session) error

	// Get retrieves a session by ID; ErrSessionNotFound if absent
	Get(id string) (*model.Session, error)

	// Delete removes a session row
	Delete(id string) error

	// DeleteExpired removes all lapsed sessions
	DeleteExpired() error
}
