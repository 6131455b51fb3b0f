package endpoints

import (
	"net/http"

	"github.com/cidadeviva/edu-admissions/pkg/identity"
	"github.com/cidadeviva/edu-admissions/pkg/server"
	"github.com/cidadeviva/edu-admissions/pkg/server/middleware"
)

// RegisterWhoamiEndpoint registers the identity echo endpoint
func RegisterWhoamiEndpoint(s *server.Server, sessionMW *middleware.SessionAuthenticator) {
	whoamiRouter := s.Router.PathPrefix("/whoami").Subrouter()
	whoamiRouter.Use(sessionMW.Middleware)

	// GET /whoami - Echo the authenticated identity
	whoamiRouter.HandleFunc("", handleWhoami()).Methods("GET")
}

func handleWhoami() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := identity.Get(r.Context())
		if !ok {
			respondWithError(w, http.StatusUnauthorized, "Authorization missing")
			return
		}

		payload := map[string]interface{}{
			"profile_id": id.PrincipalID,
			"email":      id.Email,
			"role":       id.Role,
			"expires_at": id.ExpiresAt,
		}
		if id.RemoteIP != nil {
			payload["client_ip"] = id.RemoteIP.String()
		}
		respondWithJSON(w, http.StatusOK, payload)
	}
}
