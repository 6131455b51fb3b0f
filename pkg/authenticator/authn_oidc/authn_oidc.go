// Package authn_oidc implements authentication with ID tokens minted
// by an external OpenID Connect provider.
package authn_oidc

import (
	"context"
	"errors"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"

	"github.com/cidadeviva/edu-admissions/pkg/authenticator"
	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

// Authenticator implements OIDC ID token authentication
type Authenticator struct {
	verifier *oidc.IDTokenVerifier
	profiles store.ProfilesStore
}

// NewOIDCAuthenticator discovers the issuer and creates a new OIDC
// authenticator
func NewOIDCAuthenticator(ctx context.Context, issuer, clientID string, profiles store.ProfilesStore) (*Authenticator, error) {
	provider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("oidc discovery failed: %w", err)
	}
	return &Authenticator{
		verifier: provider.Verifier(&oidc.Config{ClientID: clientID}),
		profiles: profiles,
	}, nil
}

// Name returns the authenticator name
func (a *Authenticator) Name() string {
	return "authn-oidc"
}

// Authenticate verifies the ID token passed as credentials and maps
// its email claim to a profile. The token's email must match the
// requested login when one is supplied.
func (a *Authenticator) Authenticate(ctx context.Context, input authenticator.Input) (*model.Profile, error) {
	idToken, err := a.verifier.Verify(ctx, string(input.Credentials))
	if err != nil {
		return nil, fmt.Errorf("id token verification failed: %w", err)
	}

	var claims struct {
		Email    string `json:"email"`
		Verified bool   `json:"email_verified"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("failed to parse id token claims: %w", err)
	}
	if claims.Email == "" {
		return nil, errors.New("id token carries no email claim")
	}
	if input.Email != "" && input.Email != claims.Email {
		return nil, errors.New("id token email does not match login")
	}

	profile, err := a.profiles.GetByEmail(claims.Email)
	if err != nil {
		if errors.Is(err, store.ErrProfileNotFound) {
			return nil, errors.New("authentication failed")
		}
		return nil, err
	}
	return profile, nil
}
