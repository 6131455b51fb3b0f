package endpoints

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cidadeviva/edu-admissions/pkg/audit"
	"github.com/cidadeviva/edu-admissions/pkg/authenticator"
	"github.com/cidadeviva/edu-admissions/pkg/guard"
	"github.com/cidadeviva/edu-admissions/pkg/identity"
	"github.com/cidadeviva/edu-admissions/pkg/server"
	"github.com/cidadeviva/edu-admissions/pkg/server/middleware"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type oidcLoginRequest struct {
	IDToken string `json:"id_token"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

// RegisterAuthnEndpoints registers login and logout
func RegisterAuthnEndpoints(s *server.Server) {
	s.Router.HandleFunc("/authn/login", handleLogin(s)).Methods("POST")
	s.Router.HandleFunc("/authn/oidc/login", handleOIDCLogin(s)).Methods("POST")
	s.Router.HandleFunc("/authn/logout", handleLogout(s)).Methods("POST")
}

func handleLogin(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			respondWithError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		ip := clientIP(r, s.Config)
		token, id, err := s.Guard.Login(r.Context(), req.Email, req.Password, ip)
		if err != nil {
			respondLoginFailure(w, req.Email, ip, err)
			return
		}
		respondLoginSuccess(w, token, id, ip)
	}
}

// handleOIDCLogin signs an admin in with an externally minted ID token.
// The route only exists meaningfully when an OIDC issuer is configured;
// otherwise it answers 404.
func handleOIDCLogin(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reg := s.Authenticators
		if reg == nil || !reg.IsEnabled("authn-oidc") {
			respondWithError(w, http.StatusNotFound, "OIDC sign-in is not configured")
			return
		}
		oidcAuthn, ok := reg.Get("authn-oidc")
		if !ok {
			respondWithError(w, http.StatusNotFound, "OIDC sign-in is not configured")
			return
		}

		var req oidcLoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "Malformed request body")
			return
		}
		if req.IDToken == "" {
			respondWithError(w, http.StatusBadRequest, "id_token is required")
			return
		}

		ip := clientIP(r, s.Config)
		token, id, err := s.Guard.LoginWith(r.Context(), oidcAuthn, authenticator.Input{
			Credentials: []byte(req.IDToken),
			ClientIP:    ip,
		})
		if err != nil {
			// The email behind a failed ID token is unknown here.
			respondLoginFailure(w, "", ip, err)
			return
		}
		respondLoginSuccess(w, token, id, ip)
	}
}

func respondLoginFailure(w http.ResponseWriter, email, ip string, err error) {
	switch {
	case errors.Is(err, guard.ErrInvalidCredentials):
		audit.Log(audit.AuthenticateEvent{
			Email:        email,
			ClientIP:     ip,
			Success:      false,
			ErrorMessage: "invalid credentials",
		})
		respondWithError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, guard.ErrForbidden):
		audit.Log(audit.AuthenticateEvent{
			Email:        email,
			ClientIP:     ip,
			Success:      false,
			ErrorMessage: "not an admin",
		})
		respondWithError(w, http.StatusForbidden, "Forbidden")
	default:
		respondWithError(w, http.StatusInternalServerError, "Login failed")
	}
}

func respondLoginSuccess(w http.ResponseWriter, token string, id *identity.Identity, ip string) {
	audit.Log(audit.AuthenticateEvent{
		Email:     id.Email,
		ProfileID: id.PrincipalID,
		ClientIP:  ip,
		Success:   true,
	})

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  id.ExpiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	respondWithJSON(w, http.StatusOK, loginResponse{
		Token:     token,
		ExpiresAt: id.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

func handleLogout(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := middleware.TokenFromRequest(r)
		if token == "" {
			respondWithError(w, http.StatusUnauthorized, "Authorization missing")
			return
		}
		if err := s.Guard.Logout(r.Context(), token); err != nil {
			respondWithError(w, http.StatusUnauthorized, "Invalid session")
			return
		}

		// Expire the browser cookie as well.
		http.SetCookie(w, &http.Cookie{
			Name:     middleware.SessionCookie,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteLaxMode,
		})
		w.WriteHeader(http.StatusNoContent)
	}
}
