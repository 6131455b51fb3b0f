package store

import "github.com/cidadeviva/edu-admissions/pkg/model"

// ApplicationsStore abstracts candidate application storage
type ApplicationsStore interface {
	// Create inserts a new application
	Create(app *model.Application) error

	// Fetch retrieves an application; ErrApplicationNotFound if absent
	Fetch(id string) (*model.Application, error)

	// List returns applications, optionally filtered by status, newest first
	List(status *model.ApplicationStatus, limit, offset int) ([]model.Application, error)

	// UpdateStatus transitions an application's status
	UpdateStatus(id string, status model.ApplicationStatus) error

	// SetOverallScore overwrites the denormalized summary score
	SetOverallScore(id string, score float64) error

	// RefreshViews refreshes the detail and board materialized views
	RefreshViews() error

	// MotivationTexts returns all motivation texts for the insights tally
	MotivationTexts() ([]string, error)
}
