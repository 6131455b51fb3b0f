package endpoints

import (
	"github.com/stretchr/testify/mock"

	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

// MockApplicationsStore implements store.ApplicationsStore for testing
// using testify/mock
type MockApplicationsStore struct {
	mock.Mock
}

func NewMockApplicationsStore() *MockApplicationsStore {
	return &MockApplicationsStore{}
}

func (m *MockApplicationsStore) Create(app *model.Application) error {
	args := m.Called(app)
	return args.Error(0)
}

func (m *MockApplicationsStore) Fetch(id string) (*model.Application, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationsStore) List(status *model.ApplicationStatus, limit, offset int) ([]model.Application, error) {
	args := m.Called(status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Application), args.Error(1)
}

func (m *MockApplicationsStore) UpdateStatus(id string, status model.ApplicationStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockApplicationsStore) SetOverallScore(id string, score float64) error {
	args := m.Called(id, score)
	return args.Error(0)
}

func (m *MockApplicationsStore) RefreshViews() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockApplicationsStore) MotivationTexts() ([]string, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockReviewsStore implements store.ReviewsStore for testing using
// testify/mock
type MockReviewsStore struct {
	mock.Mock
}

func NewMockReviewsStore() *MockReviewsStore {
	return &MockReviewsStore{}
}

func (m *MockReviewsStore) Upsert(review *model.ApplicationReview) error {
	args := m.Called(review)
	return args.Error(0)
}

func (m *MockReviewsStore) ListForApplication(applicationID string) ([]store.ReviewWithAuthor, error) {
	args := m.Called(applicationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]store.ReviewWithAuthor), args.Error(1)
}
