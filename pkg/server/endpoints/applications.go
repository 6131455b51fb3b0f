package endpoints

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/cidadeviva/edu-admissions/pkg/audit"
	"github.com/cidadeviva/edu-admissions/pkg/form"
	"github.com/cidadeviva/edu-admissions/pkg/identity"
	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/notify"
	"github.com/cidadeviva/edu-admissions/pkg/server"
	"github.com/cidadeviva/edu-admissions/pkg/server/middleware"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

// RegisterApplicationsEndpoints registers the intake and application
// management endpoints. Intake is public; everything else requires an
// admin session.
func RegisterApplicationsEndpoints(s *server.Server, sessionMW *middleware.SessionAuthenticator) {
	router := s.Router

	// POST /applications - Public intake
	router.HandleFunc("/applications", handleCreateApplication(s)).Methods("POST")

	appsRouter := router.PathPrefix("/applications").Subrouter()
	appsRouter.Use(sessionMW.Middleware)

	// GET /applications?status=&limit=&offset= - List applications
	appsRouter.HandleFunc("", handleListApplications(s)).Methods("GET")

	// GET /applications/{id} - Application detail with reviews
	appsRouter.HandleFunc("/{id}", handleFetchApplication(s)).Methods("GET")

	// POST /applications/{id}/status - Transition application status
	appsRouter.HandleFunc("/{id}/status", handleUpdateStatus(s)).Methods("POST")
}

func handleCreateApplication(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f form.ApplicationForm
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		if err := f.Validate(); err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}

		app := &model.Application{
			ID:            uuid.NewString(),
			ApplicantName: f.ApplicantName,
			Email:         f.Email,
			Phone:         f.Phone,
			Motivation:    f.Motivation,
			Status:        model.StatusReceived,
		}
		if err := s.ApplicationsStore.Create(app); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to save application")
			return
		}

		// Confirmation mail is best-effort; intake must not fail on
		// provider hiccups.
		_ = s.Mailer.Send(r.Context(), notify.Message{
			To:      app.Email,
			Subject: "Application received",
			Body: fmt.Sprintf("Hello %s,\n\nWe received your application and will be in touch.\n\nYour reference: `%s`",
				app.ApplicantName, app.ID),
		})

		respondWithJSON(w, http.StatusCreated, map[string]string{
			"id":     app.ID,
			"status": app.Status.String(),
		})
	}
}

func handleListApplications(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var status *model.ApplicationStatus
		if raw := r.URL.Query().Get("status"); raw != "" {
			parsed, err := model.ApplicationStatusString(raw)
			if err != nil {
				respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Unknown status %q", raw))
				return
			}
			status = &parsed
		}

		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 1 || parsed > 200 {
				respondWithError(w, http.StatusBadRequest, "limit must be between 1 and 200")
				return
			}
			limit = parsed
		}
		offset := 0
		if raw := r.URL.Query().Get("offset"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				respondWithError(w, http.StatusBadRequest, "offset must be non-negative")
				return
			}
			offset = parsed
		}

		apps, err := s.ApplicationsStore.List(status, limit, offset)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to list applications")
			return
		}
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"applications": apps,
			"count":        len(apps),
		})
	}
}

func handleFetchApplication(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]

		app, err := s.ApplicationsStore.Fetch(id)
		if err != nil {
			if errors.Is(err, store.ErrApplicationNotFound) {
				respondWithError(w, http.StatusNotFound, "Application not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch application")
			return
		}

		reviews, err := s.ReviewsStore.ListForApplication(id)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch reviews")
			return
		}

		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"application": app,
			"reviews":     reviews,
		})
	}
}

type statusRequest struct {
	Status string `json:"status"`
}

func handleUpdateStatus(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		appID := mux.Vars(r)["id"]
		admin, _ := identity.Get(r.Context())

		var req statusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		target, err := model.ApplicationStatusString(req.Status)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, fmt.Sprintf("Unknown status %q", req.Status))
			return
		}

		app, err := s.ApplicationsStore.Fetch(appID)
		if err != nil {
			if errors.Is(err, store.ErrApplicationNotFound) {
				respondWithError(w, http.StatusNotFound, "Application not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, "Failed to fetch application")
			return
		}

		if app.Status == target {
			respondWithJSON(w, http.StatusOK, map[string]string{"status": target.String()})
			return
		}
		if !app.Status.CanTransitionTo(target) {
			respondWithError(w, http.StatusConflict,
				fmt.Sprintf("Cannot move application from %s to %s", app.Status, target))
			return
		}

		if err := s.ApplicationsStore.UpdateStatus(appID, target); err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to update status")
			return
		}
		// Board counts come from the view; refresh failures degrade it
		// but the transition itself stands.
		_ = s.ApplicationsStore.RefreshViews()

		audit.Log(audit.StatusChangeEvent{
			ApplicationID: appID,
			AdminID:       admin.PrincipalID,
			From:          app.Status.String(),
			To:            target.String(),
		})

		if body, subject := decisionMail(app, target); body != "" {
			_ = s.Mailer.Send(r.Context(), notify.Message{
				To:      app.Email,
				Subject: subject,
				Body:    body,
			})
		}

		respondWithJSON(w, http.StatusOK, map[string]string{
			"status":     target.String(),
			"updated_at": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// decisionMail returns the applicant-facing mail for a terminal status,
// empty for intermediate transitions
func decisionMail(app *model.Application, target model.ApplicationStatus) (body, subject string) {
	switch target {
	case model.StatusApproved:
		return fmt.Sprintf("Hello %s,\n\n**Congratulations!** Your application has been approved.\n\nOur office will contact you with enrollment details.",
			app.ApplicantName), "Your application was approved"
	case model.StatusRejected:
		return fmt.Sprintf("Hello %s,\n\nThank you for applying. After careful review we are unable to offer you a place this term.",
			app.ApplicantName), "About your application"
	default:
		return "", ""
	}
}
