package model

import "time"

// ApplicationReview is one admin's evaluation of one application.
// The composite primary key enforces at most one review per
// (application, admin) pair; repeated submissions overwrite.
type ApplicationReview struct {
	ApplicationID    string `gorm:"primaryKey"`
	AdminID          string `gorm:"primaryKey"`
	PedagogicalScore int
	WritingScore     int
	AlignmentScore   int
	Comments         string
	OverallScore     float64
	UpdatedAt        time.Time
}

func (r ApplicationReview) TableName() string {
	return "application_reviews"
}
