// Package evaluation implements the audited evaluation write path. A
// submission fans out into four steps: the review upsert (the only step
// allowed to fail the request), the best-effort audit append, the
// denormalized summary refresh, and the materialized view refresh.
package evaluation

import (
	"fmt"
	"math"
	"time"

	"github.com/cidadeviva/edu-admissions/pkg/audit"
	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

// PartialWriteError reports a submission whose review was durably
// written but whose read models could not be brought up to date. The
// review is the source of truth; callers should surface the degraded
// state rather than retry the whole submission.
type PartialWriteError struct {
	Step string
	Err  error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("review saved but %s failed: %v", e.Step, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}

// Submission is one admin's scores for one application
type Submission struct {
	ApplicationID    string
	AdminID          string
	PedagogicalScore int
	WritingScore     int
	AlignmentScore   int
	Comments         string
}

// Writer coordinates evaluation writes across the review table, the
// applications table and the materialized views
type Writer struct {
	applications store.ApplicationsStore
	reviews      store.ReviewsStore
}

// NewWriter creates an evaluation writer
func NewWriter(applications store.ApplicationsStore, reviews store.ReviewsStore) *Writer {
	return &Writer{applications: applications, reviews: reviews}
}

// Submit writes the evaluation and returns the saved review. A repeat
// submission by the same admin overwrites the previous one in place.
// Failures after the review upsert come back as *PartialWriteError.
func (w *Writer) Submit(sub Submission) (*model.ApplicationReview, error) {
	app, err := w.applications.Fetch(sub.ApplicationID)
	if err != nil {
		return nil, err
	}
	previousOverall := app.OverallScore

	overall := round2(float64(sub.PedagogicalScore+sub.WritingScore+sub.AlignmentScore) / 3)

	review := &model.ApplicationReview{
		ApplicationID:    sub.ApplicationID,
		AdminID:          sub.AdminID,
		PedagogicalScore: sub.PedagogicalScore,
		WritingScore:     sub.WritingScore,
		AlignmentScore:   sub.AlignmentScore,
		Comments:         sub.Comments,
		OverallScore:     overall,
		UpdatedAt:        time.Now(),
	}
	if err := w.reviews.Upsert(review); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}

	// The review is durable from here on, so the audit entry is
	// appended now. Later failures degrade the read models but must
	// not lose or roll back the write, nor its trail.
	audit.Log(audit.EvaluationEvent{
		ApplicationID:    sub.ApplicationID,
		AdminID:          sub.AdminID,
		PedagogicalScore: sub.PedagogicalScore,
		WritingScore:     sub.WritingScore,
		AlignmentScore:   sub.AlignmentScore,
		OverallScore:     overall,
		PreviousOverall:  previousOverall,
	})

	if err := w.applications.SetOverallScore(sub.ApplicationID, overall); err != nil {
		return review, &PartialWriteError{Step: "summary score update", Err: err}
	}
	if err := w.applications.RefreshViews(); err != nil {
		return review, &PartialWriteError{Step: "view refresh", Err: err}
	}

	return review, nil
}

// List returns all reviews of an application with author names
func (w *Writer) List(applicationID string) ([]store.ReviewWithAuthor, error) {
	if _, err := w.applications.Fetch(applicationID); err != nil {
		return nil, err
	}
	return w.reviews.ListForApplication(applicationID)
}

// round2 rounds to two decimal places, half away from zero
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
