package endpoints

import (
	"github.com/cidadeviva/edu-admissions/pkg/server"
	"github.com/cidadeviva/edu-admissions/pkg/server/middleware"
)

// RegisterAll registers all API endpoints on the server. Everything
// under /applications except the public intake POST sits behind the
// session middleware.
func RegisterAll(srv *server.Server) {
	sessionMW := middleware.NewSessionAuthenticator(srv.Guard)

	RegisterAuthnEndpoints(srv)
	RegisterApplicationsEndpoints(srv, sessionMW)
	RegisterEvaluationsEndpoints(srv, sessionMW)
	RegisterInsightsEndpoints(srv, sessionMW)
	RegisterWhoamiEndpoint(srv, sessionMW)
	RegisterStatusEndpoints(srv)
}
