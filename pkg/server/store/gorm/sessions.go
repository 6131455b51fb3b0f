package gorm

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

// Ensure SessionsStore implements store.SessionsStore
var _ store.SessionsStore = (*SessionsStore)(nil)

// SessionsStore implements store.SessionsStore using GORM
type SessionsStore struct {
	db *gorm.DB
}

// NewSessionsStore creates a new SessionsStore
func NewSessionsStore(db *gorm.DB) *SessionsStore {
	return &SessionsStore{db: db}
}

// Create inserts a new session row
func (s *SessionsStore) Create(session *model.Session) error {
	return s.db.Create(session).Error
}

// Get retrieves a session by ID
func (s *SessionsStore) Get(id string) (*model.Session, error) {
	var session model.Session
	tx := s.db.Where("id = ?", id).First(&session)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrSessionNotFound
		}
		return nil, tx.Error
	}
	return &session, nil
}

// Delete removes a session row, revoking any token that references it
func (s *SessionsStore) Delete(id string) error {
	return s.db.Exec(`DELETE FROM sessions WHERE id = ?`, id).Error
}

// DeleteExpired removes all lapsed sessions
func (s *SessionsStore) DeleteExpired() error {
	return s.db.Exec(`DELETE FROM sessions WHERE expires_at < ?`, time.Now()).Error
}
