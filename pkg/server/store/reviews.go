package store

import "github.com/cidadeviva/edu-admissions/pkg/model"

// ReviewWithAuthor is a review joined with the authoring admin's name.
type ReviewWithAuthor struct {
	model.ApplicationReview
	AdminName string
}

// ReviewsStore abstracts evaluation review storage
type ReviewsStore interface {
	// Upsert writes or overwrites the review keyed by
	// (application_id, admin_id). The storage layer's conflict handling
	// makes the uniqueness invariant race-free under concurrent
	// submissions by the same admin.
	Upsert(review *model.ApplicationReview) error

	// ListForApplication returns all reviews of an application, each
	// joined with the authoring admin's display name
	ListForApplication(applicationID string) ([]ReviewWithAuthor, error)
}
