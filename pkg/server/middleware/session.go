// Package middleware carries the HTTP middleware for the protected
// area.
package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"
	"regexp"

	"github.com/cidadeviva/edu-admissions/pkg/guard"
	"github.com/cidadeviva/edu-admissions/pkg/identity"
)

var tokenRegex = regexp.MustCompile(`^Token token="(.*)"`)

// SessionCookie is the cookie the browser client stores its session
// token in. API clients use the Authorization header instead.
const SessionCookie = "cv_session"

// Authorizer checks a session token and returns the identity behind it
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*identity.Identity, error)
}

// SessionAuthenticator is middleware that gates requests on a valid
// admin session
type SessionAuthenticator struct {
	Guard Authorizer
}

// NewSessionAuthenticator creates a new session middleware
func NewSessionAuthenticator(g Authorizer) *SessionAuthenticator {
	return &SessionAuthenticator{Guard: g}
}

// TokenFromRequest extracts the session token from the Authorization
// header or, failing that, the session cookie. Empty means no
// credentials were presented.
func TokenFromRequest(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		tokenMatches := tokenRegex.FindStringSubmatch(authHeader)
		if len(tokenMatches) != 2 {
			return ""
		}
		return tokenMatches[1]
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// Middleware returns an HTTP middleware that authorizes the session
// token and stores the resulting identity in the request context. The
// guard has already destroyed the session by the time a 403 goes out.
func (a *SessionAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := TokenFromRequest(r)
		if token == "" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Authorization missing"))
			return
		}

		id, err := a.Guard.Authorize(r.Context(), token)
		if err != nil {
			if errors.Is(err, guard.ErrForbidden) {
				w.WriteHeader(http.StatusForbidden)
				w.Write([]byte("Forbidden"))
				return
			}
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("Invalid session"))
			return
		}

		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			id = id.WithRemoteIP(net.ParseIP(host))
		}

		next.ServeHTTP(w, r.WithContext(identity.Set(r.Context(), id)))
	})
}
