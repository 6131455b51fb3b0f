package endpoints

import (
	"context"
	"os"
	"testing"

	"github.com/gorilla/mux"

	"github.com/cidadeviva/edu-admissions/pkg/audit"
	"github.com/cidadeviva/edu-admissions/pkg/config"
	"github.com/cidadeviva/edu-admissions/pkg/evaluation"
	"github.com/cidadeviva/edu-admissions/pkg/guard"
	"github.com/cidadeviva/edu-admissions/pkg/identity"
	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/notify"
	"github.com/cidadeviva/edu-admissions/pkg/server"
	"github.com/cidadeviva/edu-admissions/pkg/server/middleware"
)

func TestMain(m *testing.M) {
	audit.SetEnabled(false)
	os.Exit(m.Run())
}

const (
	testAdminID    = "11111111-1111-1111-1111-111111111111"
	testAdminToken = "admin-token"
	testAppID      = "33333333-3333-3333-3333-333333333333"
)

// staticAuthorizer maps fixed tokens to identities, standing in for the
// session guard in handler tests
type staticAuthorizer struct{}

func (staticAuthorizer) Authorize(ctx context.Context, token string) (*identity.Identity, error) {
	if token == testAdminToken {
		return &identity.Identity{
			PrincipalID: testAdminID,
			Email:       "ana@cidadeviva.org",
			Role:        model.RoleAdmin,
			SessionID:   "sess-1",
		}, nil
	}
	return nil, guard.ErrInvalidSession
}

// newTestServer builds a server around mock stores with all endpoints
// registered behind a static session middleware
func newTestServer(apps *MockApplicationsStore, reviews *MockReviewsStore) *server.Server {
	cfg := &config.Config{
		SessionTTLMinutes: 480,
		ScoreMin:          0,
		ScoreMax:          10,
	}
	srv := &server.Server{
		Router:            mux.NewRouter().UseEncodedPath(),
		Config:            cfg,
		Writer:            evaluation.NewWriter(apps, reviews),
		Mailer:            notify.NoopMailer{},
		ApplicationsStore: apps,
		ReviewsStore:      reviews,
	}

	sessionMW := middleware.NewSessionAuthenticator(staticAuthorizer{})
	RegisterApplicationsEndpoints(srv, sessionMW)
	RegisterEvaluationsEndpoints(srv, sessionMW)
	RegisterInsightsEndpoints(srv, sessionMW)
	RegisterWhoamiEndpoint(srv, sessionMW)
	return srv
}

func authHeader() string {
	return `Token token="` + testAdminToken + `"`
}
