package model

import "time"

// Application is one candidate application. OverallScore is a denormalized
// copy of the most recently written review's overall score, kept purely for
// sorting and the board view; it is last-writer-wins across reviewers.
type Application struct {
	ID            string `gorm:"primaryKey"`
	ApplicantName string
	Email         string
	Phone         string
	Motivation    string
	Status        ApplicationStatus
	OverallScore  *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (a Application) TableName() string {
	return "applications"
}
