// Package guard issues and checks admin sessions. It is the single
// gate for the protected area: every request entering it passes
// through Authorize exactly once, and everything downstream trusts the
// identity the guard produced.
package guard

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/cidadeviva/edu-admissions/pkg/authenticator"
	"github.com/cidadeviva/edu-admissions/pkg/identity"
	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

var (
	// ErrInvalidCredentials means the email/password pair did not verify
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidSession means the token is malformed, forged, expired,
	// or its session row no longer exists
	ErrInvalidSession = errors.New("invalid session")

	// ErrForbidden means the session belongs to a non-admin. By the
	// time the caller sees it, the offending session has already been
	// destroyed.
	ErrForbidden = errors.New("forbidden")
)

// Guard authenticates logins and authorizes session tokens
type Guard struct {
	authn      authenticator.Authenticator
	sessions   store.SessionsStore
	profiles   store.ProfilesStore
	signingKey []byte
	ttl        time.Duration

	// now is swappable for tests
	now func() time.Time
}

// NewGuard creates a session guard
func NewGuard(authn authenticator.Authenticator, sessions store.SessionsStore, profiles store.ProfilesStore, signingKey []byte, ttl time.Duration) *Guard {
	return &Guard{
		authn:      authn,
		sessions:   sessions,
		profiles:   profiles,
		signingKey: signingKey,
		ttl:        ttl,
		now:        time.Now,
	}
}

// Login verifies an email/password pair with the default password
// authenticator. See LoginWith.
func (g *Guard) Login(ctx context.Context, email, password, clientIP string) (string, *identity.Identity, error) {
	return g.LoginWith(ctx, g.authn, authenticator.Input{
		Email:       email,
		Credentials: []byte(password),
		ClientIP:    clientIP,
	})
}

// LoginWith verifies the credentials with the given authenticator,
// creates a session row and returns a signed token referencing it.
// Non-admin profiles authenticate but are refused a usable session:
// the freshly created row is destroyed and ErrForbidden returned.
func (g *Guard) LoginWith(ctx context.Context, authn authenticator.Authenticator, input authenticator.Input) (string, *identity.Identity, error) {
	profile, err := authn.Authenticate(ctx, input)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}

	now := g.now()
	session := &model.Session{
		ID:        uuid.NewString(),
		ProfileID: profile.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(g.ttl),
	}
	if err := g.sessions.Create(session); err != nil {
		return "", nil, err
	}

	if !profile.IsAdmin() {
		// Never hand a session to a non-admin, even momentarily.
		_ = g.sessions.Delete(session.ID)
		return "", nil, ErrForbidden
	}

	token, err := g.sign(session, profile)
	if err != nil {
		_ = g.sessions.Delete(session.ID)
		return "", nil, err
	}

	return token, &identity.Identity{
		PrincipalID: profile.ID,
		Email:       profile.Email,
		Role:        profile.Role,
		SessionID:   session.ID,
		IssuedAt:    now,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// Authorize checks a session token and returns the identity behind it.
// The token is only as alive as its session row: a deleted row means
// ErrInvalidSession no matter how fresh the signature is. A valid
// session held by a non-admin is destroyed on sight and reported as
// ErrForbidden; the same token then fails with ErrInvalidSession on
// every later call.
func (g *Guard) Authorize(ctx context.Context, token string) (*identity.Identity, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return g.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(g.now))
	if err != nil {
		return nil, ErrInvalidSession
	}
	if claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidSession
	}

	session, err := g.sessions.Get(claims.ID)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	if session.Expired(g.now()) {
		_ = g.sessions.Delete(session.ID)
		return nil, ErrInvalidSession
	}

	profile, err := g.profiles.GetByID(session.ProfileID)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			// Orphaned session; clean it up.
			_ = g.sessions.Delete(session.ID)
			return nil, ErrInvalidSession
		}
		return nil, err
	}

	if !profile.IsAdmin() {
		// Destroy before refusing so a demoted admin's token dies here.
		if err := g.sessions.Delete(session.ID); err != nil {
			return nil, err
		}
		return nil, ErrForbidden
	}

	return &identity.Identity{
		PrincipalID: profile.ID,
		Email:       profile.Email,
		Role:        profile.Role,
		SessionID:   session.ID,
		IssuedAt:    session.CreatedAt,
		ExpiresAt:   session.ExpiresAt,
	}, nil
}

// Logout destroys the session behind a token. Unparseable tokens are
// ErrInvalidSession; a session already gone is not an error.
func (g *Guard) Logout(ctx context.Context, token string) error {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return g.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(g.now))
	if err != nil || claims.ID == "" {
		return ErrInvalidSession
	}
	return g.sessions.Delete(claims.ID)
}

func (g *Guard) sign(session *model.Session, profile *model.Profile) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		Subject:   profile.ID,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.signingKey)
}
