package model

import "time"

// Roles a profile can hold. Only RoleAdmin may reach the protected area.
const (
	RoleAdmin     = "admin"
	RoleApplicant = "applicant"
)

// Profile is one registered identity, applicant or staff.
type Profile struct {
	ID           string `gorm:"primaryKey"`
	Email        string
	FullName     string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Profile) TableName() string {
	return "profiles"
}

// IsAdmin reports whether the profile holds exactly the admin role.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}
