package model

import "time"

// Session is a server-side session row. Signed session tokens carry the
// session ID; deleting the row makes the token unusable.
type Session struct {
	ID        string `gorm:"primaryKey"`
	ProfileID string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session lapsed at the given instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
