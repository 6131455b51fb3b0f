package authn

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cidadeviva/edu-admissions/pkg/authenticator"
	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

type fakeProfiles struct {
	store.ProfilesStore
	byEmail map[string]*model.Profile
}

func (f *fakeProfiles) GetByEmail(email string) (*model.Profile, error) {
	if p, ok := f.byEmail[email]; ok {
		return p, nil
	}
	return nil, store.ErrProfileNotFound
}

func TestAuthenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	profiles := &fakeProfiles{byEmail: map[string]*model.Profile{
		"ana@cidadeviva.org": {
			ID:           "11111111-1111-1111-1111-111111111111",
			Email:        "ana@cidadeviva.org",
			Role:         model.RoleAdmin,
			PasswordHash: string(hash),
		},
		"nohash@cidadeviva.org": {
			ID:    "22222222-2222-2222-2222-222222222222",
			Email: "nohash@cidadeviva.org",
		},
	}}
	auth := NewPasswordAuthenticator(profiles)

	t.Run("valid password", func(t *testing.T) {
		profile, err := auth.Authenticate(context.Background(), authenticator.Input{
			Email:       "ana@cidadeviva.org",
			Credentials: []byte("s3cret"),
		})
		require.NoError(t, err)
		assert.Equal(t, "ana@cidadeviva.org", profile.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := auth.Authenticate(context.Background(), authenticator.Input{
			Email:       "ana@cidadeviva.org",
			Credentials: []byte("guess"),
		})
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := auth.Authenticate(context.Background(), authenticator.Input{
			Email:       "nobody@cidadeviva.org",
			Credentials: []byte("s3cret"),
		})
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("profile without password", func(t *testing.T) {
		_, err := auth.Authenticate(context.Background(), authenticator.Input{
			Email:       "nohash@cidadeviva.org",
			Credentials: []byte(""),
		})
		assert.ErrorIs(t, err, ErrBadCredentials)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := auth.Authenticate(context.Background(), authenticator.Input{
			Credentials: []byte("s3cret"),
		})
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrBadCredentials)
	})
}
