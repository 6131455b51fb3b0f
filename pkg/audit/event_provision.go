package audit

import "fmt"

// Provisioning operations performed against admin profiles.
const (
	ProvisionCreate        = "create"
	ProvisionDelete        = "delete"
	ProvisionResetPassword = "reset-password"
)

// ProvisionEvent represents an admin account provisioning audit event
type ProvisionEvent struct {
	Operation string
	ProfileID string
	Email     string
	ActorID   string
}

func (e ProvisionEvent) Action() string {
	return "provision"
}

func (e ProvisionEvent) Entity() string {
	return "profiles"
}

func (e ProvisionEvent) EntityID() string {
	return e.ProfileID
}

func (e ProvisionEvent) Actor() string {
	if e.ActorID != "" {
		return e.ActorID
	}
	// CLI provisioning runs outside any session
	return "system"
}

func (e ProvisionEvent) Message() string {
	return fmt.Sprintf("%s performed %s on admin account %s", e.Actor(), e.Operation, e.Email)
}

func (e ProvisionEvent) Severity() Severity {
	return SeverityNotice
}

func (e ProvisionEvent) Snapshots() (before, after map[string]any) {
	after = map[string]any{
		"operation": e.Operation,
		"email":     e.Email,
	}
	return nil, after
}
