package gorm

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

// Ensure ProfilesStore implements store.ProfilesStore
var _ store.ProfilesStore = (*ProfilesStore)(nil)

// ProfilesStore implements store.ProfilesStore using GORM
type ProfilesStore struct {
	db *gorm.DB
}

// NewProfilesStore creates a new ProfilesStore
func NewProfilesStore(db *gorm.DB) *ProfilesStore {
	return &ProfilesStore{db: db}
}

// GetByID retrieves a profile by its ID
func (s *ProfilesStore) GetByID(id string) (*model.Profile, error) {
	var profile model.Profile
	tx := s.db.Where("id = ?", id).First(&profile)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrProfileNotFound
		}
		return nil, tx.Error
	}
	return &profile, nil
}

// GetByEmail retrieves a profile by email
func (s *ProfilesStore) GetByEmail(email string) (*model.Profile, error) {
	var profile model.Profile
	tx := s.db.Where("email = ?", email).First(&profile)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrProfileNotFound
		}
		return nil, tx.Error
	}
	return &profile, nil
}

// Create inserts a new profile
func (s *ProfilesStore) Create(profile *model.Profile) error {
	return s.db.Create(profile).Error
}

// Upsert inserts a profile or updates name/role for an existing email
func (s *ProfilesStore) Upsert(profile *model.Profile) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "role", "updated_at"}),
	}).Create(profile).Error
}

// UpdatePasswordHash replaces the stored password hash
func (s *ProfilesStore) UpdatePasswordHash(id string, hash string) error {
	tx := s.db.Model(&model.Profile{}).Where("id = ?", id).Update("password_hash", hash)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return store.ErrProfileNotFound
	}
	return nil
}

// Delete removes a profile
func (s *ProfilesStore) Delete(id string) error {
	return s.db.Exec(`DELETE FROM profiles WHERE id = ?`, id).Error
}

// CountAdmins counts profiles holding the admin role
func (s *ProfilesStore) CountAdmins() (int64, error) {
	var count int64
	tx := s.db.Model(&model.Profile{}).Where("role = ?", model.RoleAdmin).Count(&count)
	return count, tx.Error
}
