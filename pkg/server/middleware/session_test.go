package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cidadeviva/edu-admissions/pkg/guard"
	"github.com/cidadeviva/edu-admissions/pkg/identity"
	"github.com/cidadeviva/edu-admissions/pkg/model"
)

type fakeAuthorizer struct {
	identities map[string]*identity.Identity
	errs       map[string]error
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, token string) (*identity.Identity, error) {
	if err, ok := f.errs[token]; ok {
		return nil, err
	}
	if id, ok := f.identities[token]; ok {
		copied := *id
		return &copied, nil
	}
	return nil, guard.ErrInvalidSession
}

func testHandler(t *testing.T, sawIdentity **identity.Identity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		require.True(t, ok)
		*sawIdentity = id
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestSessionMiddleware(t *testing.T) {
	adminIdentity := &identity.Identity{
		PrincipalID: "11111111-1111-1111-1111-111111111111",
		Email:       "ana@cidadeviva.org",
		Role:        model.RoleAdmin,
		SessionID:   "sess-1",
	}
	authorizer := &fakeAuthorizer{
		identities: map[string]*identity.Identity{"good-token": adminIdentity},
		errs:       map[string]error{"applicant-token": guard.ErrForbidden},
	}
	mw := NewSessionAuthenticator(authorizer)

	t.Run("header token is accepted", func(t *testing.T) {
		var saw *identity.Identity
		r := httptest.NewRequest(http.MethodGet, "/applications", nil)
		r.Header.Set("Authorization", `Token token="good-token"`)
		r.RemoteAddr = "203.0.113.9:51442"
		w := httptest.NewRecorder()

		mw.Middleware(testHandler(t, &saw)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, saw)
		assert.Equal(t, "ana@cidadeviva.org", saw.Email)
		assert.Equal(t, "203.0.113.9", saw.RemoteIP.String())
	})

	t.Run("cookie token is accepted", func(t *testing.T) {
		var saw *identity.Identity
		r := httptest.NewRequest(http.MethodGet, "/applications", nil)
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "good-token"})
		w := httptest.NewRecorder()

		mw.Middleware(testHandler(t, &saw)).ServeHTTP(w, r)

		assert.Equal(t, http.StatusNoContent, w.Code)
		require.NotNil(t, saw)
	})

	t.Run("missing credentials", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/applications", nil)
		w := httptest.NewRecorder()

		mw.Middleware(http.NotFoundHandler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/applications", nil)
		r.Header.Set("Authorization", "Bearer whatever")
		w := httptest.NewRecorder()

		mw.Middleware(http.NotFoundHandler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid session", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/applications", nil)
		r.Header.Set("Authorization", `Token token="stale-token"`)
		w := httptest.NewRecorder()

		mw.Middleware(http.NotFoundHandler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("non-admin session", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/applications", nil)
		r.Header.Set("Authorization", fmt.Sprintf("Token token=%q", "applicant-token"))
		w := httptest.NewRecorder()

		mw.Middleware(http.NotFoundHandler()).ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
