package gorm

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

// Ensure ApplicationsStore implements store.ApplicationsStore
var _ store.ApplicationsStore = (*ApplicationsStore)(nil)

// ApplicationsStore implements store.ApplicationsStore using GORM
type ApplicationsStore struct {
	db *gorm.DB
}

// NewApplicationsStore creates a new ApplicationsStore
func NewApplicationsStore(db *gorm.DB) *ApplicationsStore {
	return &ApplicationsStore{db: db}
}

// Create inserts a new application
func (s *ApplicationsStore) Create(application *model.Application) error {
	return s.db.Create(application).Error
}

// Fetch retrieves an application by ID
func (s *ApplicationsStore) Fetch(id string) (*model.Application, error) {
	var application model.Application
	tx := s.db.Where("id = ?", id).First(&application)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrApplicationNotFound
		}
		return nil, tx.Error
	}
	return &application, nil
}

// List returns applications ordered by creation time, newest first.
// A nil status matches all of them.
func (s *ApplicationsStore) List(status *model.ApplicationStatus, limit, offset int) ([]model.Application, error) {
	var applications []model.Application
	tx := s.db.Order("created_at DESC")
	if status != nil {
		tx = tx.Where("status = ?", *status)
	}
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if offset > 0 {
		tx = tx.Offset(offset)
	}
	if err := tx.Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

// UpdateStatus moves an application to a new status
func (s *ApplicationsStore) UpdateStatus(id string, status model.ApplicationStatus) error {
	tx := s.db.Model(&model.Application{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrApplicationNotFound
	}
	return nil
}

// SetOverallScore writes the denormalized overall score onto the
// application row. Last writer wins.
func (s *ApplicationsStore) SetOverallScore(id string, score float64) error {
	tx := s.db.Model(&model.Application{}).Where("id = ?", id).
		Updates(map[string]interface{}{"overall_score": score, "updated_at": time.Now()})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrApplicationNotFound
	}
	return nil
}

// RefreshViews rebuilds the materialized views that back the detail and
// board pages. Both views carry a unique index so the refresh can run
// concurrently without blocking readers.
func (s *ApplicationsStore) RefreshViews() error {
	for _, view := range []string{"application_detail", "application_board"} {
		if err := s.db.Exec("REFRESH MATERIALIZED VIEW CONCURRENTLY " + view).Error; err != nil {
			return err
		}
	}
	return nil
}

// MotivationTexts returns the motivation essays of all applications
func (s *ApplicationsStore) MotivationTexts() ([]string, error) {
	var texts []string
	tx := s.db.Raw(`SELECT motivation FROM applications WHERE motivation <> ''`).Scan(&texts)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return texts, nil
}
