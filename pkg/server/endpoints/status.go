package endpoints

import (
	"net/http"

	"github.com/cidadeviva/edu-admissions/pkg/server"
)

// RegisterStatusEndpoints registers the public health endpoints
func RegisterStatusEndpoints(s *server.Server) {
	// GET / - Service banner
	s.Router.HandleFunc("/", handleRoot()).Methods("GET")

	// GET /health - Liveness and database connectivity
	s.Router.HandleFunc("/health", handleHealth(s)).Methods("GET")
}

func handleRoot() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{
			"service": "admissions",
		})
	}
}

func handleHealth(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.HealthStore.Ping(); err != nil {
			respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status":   "degraded",
				"database": "unreachable",
			})
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]string{
			"status":   "ok",
			"database": "ok",
		})
	}
}
