package gorm

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

// Ensure ReviewsStore implements store.ReviewsStore
var _ store.ReviewsStore = (*ReviewsStore)(nil)

// ReviewsStore implements store.ReviewsStore using GORM
type ReviewsStore struct {
	db *gorm.DB
}

// NewReviewsStore creates a new ReviewsStore
func NewReviewsStore(db *gorm.DB) *ReviewsStore {
	return &ReviewsStore{db: db}
}

// Upsert writes the review, overwriting an existing one by the same
// admin for the same application
func (s *ReviewsStore) Upsert(review *model.ApplicationReview) error {
	return s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "application_id"}, {Name: "admin_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"pedagogical_score", "writing_score", "alignment_score",
			"comments", "overall_score", "updated_at",
		}),
	}).Create(review).Error
}

// ListForApplication returns all reviews of an application with the
// authoring admin's name joined in
func (s *ReviewsStore) ListForApplication(applicationID string) ([]store.ReviewWithAuthor, error) {
	var reviews []store.ReviewWithAuthor
	tx := s.db.Raw(`
		SELECT r.*, p.full_name AS admin_name
		FROM application_reviews r
		JOIN profiles p ON p.id = r.admin_id
		WHERE r.application_id = ?
		ORDER BY r.updated_at DESC
	`, applicationID).Scan(&reviews)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return reviews, nil
}
