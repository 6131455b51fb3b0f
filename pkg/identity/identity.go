package identity

import (
	"context"
	"net"
	"time"

	"github.com/cidadeviva/edu-admissions/pkg/model"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

const (
	// Key is the context key for Identity.
	Key ContextKey = "identity"
)

// Identity represents the authenticated identity for a request. It is
// produced once by the session guard and threaded through subsequent
// calls; protected operations never re-derive it.
type Identity struct {
	PrincipalID string
	Email       string
	Role        string
	SessionID   string
	IssuedAt    time.Time
	ExpiresAt   time.Time

	// RemoteIP is the client IP address for audit purposes
	RemoteIP net.IP
}

// WithRemoteIP sets the remote IP address.
func (i *Identity) WithRemoteIP(ip net.IP) *Identity {
	i.RemoteIP = ip
	return i
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// Get retrieves Identity from context.
func Get(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(Key).(*Identity)
	return id, ok
}

// Set stores Identity in context.
func Set(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, Key, id)
}
