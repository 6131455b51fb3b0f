package audit

import "fmt"

// StatusChangeEvent represents an application status transition
type StatusChangeEvent struct {
	ApplicationID string
	AdminID       string
	From          string
	To            string
}

func (e StatusChangeEvent) Action() string {
	return "status"
}

func (e StatusChangeEvent) Entity() string {
	return "applications"
}

func (e StatusChangeEvent) EntityID() string {
	return e.ApplicationID
}

func (e StatusChangeEvent) Actor() string {
	return e.AdminID
}

func (e StatusChangeEvent) Message() string {
	return fmt.Sprintf("%s moved application %s from %s to %s", e.AdminID, e.ApplicationID, e.From, e.To)
}

func (e StatusChangeEvent) Severity() Severity {
	return SeverityInfo
}

func (e StatusChangeEvent) Snapshots() (before, after map[string]any) {
	return map[string]any{"status": e.From}, map[string]any{"status": e.To}
}
