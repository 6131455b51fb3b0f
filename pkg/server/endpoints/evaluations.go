package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/cidadeviva/edu-admissions/pkg/evaluation"
	"github.com/cidadeviva/edu-admissions/pkg/form"
	"github.com/cidadeviva/edu-admissions/pkg/identity"
	"github.com/cidadeviva/edu-admissions/pkg/server"
	"github.com/cidadeviva/edu-admissions/pkg/server/middleware"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

// RegisterEvaluationsEndpoints registers the evaluation write and read
// endpoints
func RegisterEvaluationsEndpoints(s *server.Server, sessionMW *middleware.SessionAuthenticator) {
	evalRouter := s.Router.PathPrefix("/applications/{id}/evaluations").Subrouter()
	evalRouter.Use(sessionMW.Middleware)

	// POST /applications/{id}/evaluations - Submit or overwrite own evaluation
	evalRouter.HandleFunc("", handleSubmitEvaluation(s)).Methods("POST")

	// GET /applications/{id}/evaluations - List evaluations with authors
	evalRouter.HandleFunc("", handleListEvaluations(s)).Methods("GET")
}

func handleSubmitEvaluation(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appID := mux.Vars(r)["id"]
		admin, _ := identity.Get(r.Context())

		var f form.EvaluationForm
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		if err := f.Validate(s.Config.ScoreMin, s.Config.ScoreMax); err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		review, err := s.Writer.Submit(evaluation.Submission{
			ApplicationID:    appID,
			AdminID:          admin.PrincipalID,
			PedagogicalScore: *f.PedagogicalScore,
			WritingScore:     *f.WritingScore,
			AlignmentScore:   *f.AlignmentScore,
			Comments:         f.Comments,
		})
		if err != nil {
			var partial *evaluation.PartialWriteError
			switch {
			case errors.Is(err, store.ErrApplicationNotFound):
				respondWithError(w, http.StatusNotFound, "Application not found")
			case errors.As(err, &partial):
				// The review is saved; tell the client the truth about
				// the stale read models instead of pretending failure.
				respondWithJSON(w, http.StatusOK, map[string]interface{}{
					"review":  review,
					"warning": "evaluation saved, but derived data may be briefly stale",
				})
			default:
				respondWithError(w, http.StatusInternalServerError, "Failed to save evaluation")
			}
			return
		}

		respondWithJSON(w, http.StatusCreated, map[string]interface{}{
			"review": review,
		})
	}
}

func handleListEvaluations(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appID := mux.Vars(r)["id"]

		reviews, err := s.Writer.List(appID)
		if err != nil {
			if errors.Is(err, store.ErrApplicationNotFound) {
				respondWithError(w, http.StatusNotFound, "Application not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to list evaluations")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"evaluations": reviews,
			"count":       len(reviews),
		})
	}
}
