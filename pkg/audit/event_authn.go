package audit

import "fmt"

// AuthenticateEvent represents a sign-in or sign-out audit event
type AuthenticateEvent struct {
	ProfileID    string
	Email        string
	ClientIP     string
	SignOut      bool
	Success      bool
	ErrorMessage string
}

func (e AuthenticateEvent) Action() string {
	if e.SignOut {
		return "logout"
	}
	return "login"
}

func (e AuthenticateEvent) Entity() string {
	return "sessions"
}

func (e AuthenticateEvent) EntityID() string {
	return ""
}

func (e AuthenticateEvent) Actor() string {
	if e.ProfileID != "" {
		return e.ProfileID
	}
	return e.Email
}

func (e AuthenticateEvent) Message() string {
	if e.SignOut {
		return fmt.Sprintf("%s signed out", e.Actor())
	}
	if e.Success {
		return fmt.Sprintf("%s successfully signed in", e.Actor())
	}
	msg := fmt.Sprintf("%s failed to sign in", e.Actor())
	if e.ErrorMessage != "" {
		msg += ": " + e.ErrorMessage
	}
	return msg
}

func (e AuthenticateEvent) Severity() Severity {
	if e.Success || e.SignOut {
		return SeverityInfo
	}
	return SeverityWarning
}

func (e AuthenticateEvent) Snapshots() (before, after map[string]any) {
	after = map[string]any{
		"email": e.Email,
	}
	if e.ClientIP != "" {
		after["client_ip"] = e.ClientIP
	}
	if !e.Success && e.ErrorMessage != "" {
		after["error"] = e.ErrorMessage
	}
	return nil, after
}
