// Package authn implements password authentication against stored
// bcrypt hashes.
package authn

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/cidadeviva/edu-admissions/pkg/authenticator"
	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

// ErrBadCredentials is returned for any unverifiable email/password
// pair. The cause (unknown email, empty hash, mismatch) is deliberately
// not distinguishable by the caller.
var ErrBadCredentials = errors.New("authentication failed")

// Authenticator implements password authentication
type Authenticator struct {
	profiles store.ProfilesStore
}

// NewPasswordAuthenticator creates a new password authenticator
func NewPasswordAuthenticator(profiles store.ProfilesStore) *Authenticator {
	return &Authenticator{profiles: profiles}
}

// Name returns the authenticator name
func (a *Authenticator) Name() string {
	return "authn"
}

// Authenticate compares the supplied password against the profile's
// bcrypt hash
func (a *Authenticator) Authenticate(ctx context.Context, input authenticator.Input) (*model.Profile, error) {
	if input.Email == "" {
		return nil, errors.New("email is required")
	}

	profile, err := a.profiles.GetByEmail(input.Email)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			// Burn a comparison anyway so unknown emails cost the
			// same as wrong passwords.
			_ = bcrypt.CompareHashAndPassword(dummyHash, input.Credentials)
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if profile.PasswordHash == "" {
		return nil, ErrBadCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), input.Credentials); err != nil {
		return nil, ErrBadCredentials
	}

	return profile, nil
}

// dummyHash is a valid bcrypt hash of an unguessable value, used to
// equalize timing when the email is unknown.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")
