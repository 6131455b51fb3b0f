package store

import "github.com/cidadeviva/edu-admissions/pkg/model"

// ProfilesStore abstracts profile storage operations
type ProfilesStore interface {
	// GetByID retrieves a profile by its ID
	GetByID(id string) (*model.Profile, error)

	// GetByEmail retrieves a profile by email
	GetByEmail(email string) (*model.Profile, error)

	// Create inserts a new profile
	Create(profile *model.Profile) error

	// Upsert inserts a profile or updates name/role for an existing email
	Upsert(profile *model.Profile) error

	// UpdatePasswordHash replaces the stored password hash
	UpdatePasswordHash(id string, hash string) error

	// Delete removes a profile
	Delete(id string) error

	// CountAdmins counts profiles holding the admin role
	CountAdmins() (int64, error)
}
