package endpoints

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

func TestCreateApplicationEndpoint(t *testing.T) {
	t.Run("valid intake", func(t *testing.T) {
		apps := NewMockApplicationsStore()
		apps.On("Create", mock.AnythingOfType("*model.Application")).Return(nil)
		srv := newTestServer(apps, NewMockReviewsStore())

		body := `{"applicant_name":"João Pereira","email":"joao@example.com","motivation":"I want to teach."}`
		req := httptest.NewRequest("POST", "/applications", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)

		var resp map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["id"])
		assert.Equal(t, "received", resp["status"])
		apps.AssertExpectations(t)
	})

	t.Run("intake needs no session", func(t *testing.T) {
		apps := NewMockApplicationsStore()
		apps.On("Create", mock.Anything).Return(nil)
		srv := newTestServer(apps, NewMockReviewsStore())

		body := `{"applicant_name":"Maria","email":"maria@example.com","motivation":"x"}`
		req := httptest.NewRequest("POST", "/applications", strings.NewReader(body))
		// Deliberately no Authorization header.
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		srv := newTestServer(NewMockApplicationsStore(), NewMockReviewsStore())

		body := `{"applicant_name":"João","email":"not-an-address","motivation":"x"}`
		req := httptest.NewRequest("POST", "/applications", strings.NewReader(body))
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}

func TestListApplicationsEndpoint(t *testing.T) {
	t.Run("requires a session", func(t *testing.T) {
		srv := newTestServer(NewMockApplicationsStore(), NewMockReviewsStore())

		req := httptest.NewRequest("GET", "/applications", nil)
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("lists with status filter", func(t *testing.T) {
		apps := NewMockApplicationsStore()
		status := model.StatusUnderReview
		apps.On("List", &status, 50, 0).Return([]model.Application{
			{ID: testAppID, ApplicantName: "João Pereira", Status: status},
		}, nil)
		srv := newTestServer(apps, NewMockReviewsStore())

		req := httptest.NewRequest("GET", "/applications?status=under_review", nil)
		req.Header.Set("Authorization", authHeader())
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Count int `json:"count"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Count)
		apps.AssertExpectations(t)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		srv := newTestServer(NewMockApplicationsStore(), NewMockReviewsStore())

		req := httptest.NewRequest("GET", "/applications?status=bogus", nil)
		req.Header.Set("Authorization", authHeader())
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFetchApplicationEndpoint(t *testing.T) {
	t.Run("returns application with reviews", func(t *testing.T) {
		apps := NewMockApplicationsStore()
		apps.On("Fetch", testAppID).Return(&model.Application{ID: testAppID, ApplicantName: "João Pereira"}, nil)
		reviews := NewMockReviewsStore()
		reviews.On("ListForApplication", testAppID).Return([]store.ReviewWithAuthor{
			{
				ApplicationReview: model.ApplicationReview{ApplicationID: testAppID, AdminID: testAdminID, OverallScore: 8},
				AdminName:         "Ana Souza",
			},
		}, nil)
		srv := newTestServer(apps, reviews)

		req := httptest.NewRequest("GET", "/applications/"+testAppID, nil)
		req.Header.Set("Authorization", authHeader())
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Ana Souza")
	})

	t.Run("unknown application", func(t *testing.T) {
		apps := NewMockApplicationsStore()
		apps.On("Fetch", "nope").Return(nil, store.ErrApplicationNotFound)
		srv := newTestServer(apps, NewMockReviewsStore())

		req := httptest.NewRequest("GET", "/applications/nope", nil)
		req.Header.Set("Authorization", authHeader())
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUpdateStatusEndpoint(t *testing.T) {
	t.Run("allowed transition", func(t *testing.T) {
		apps := NewMockApplicationsStore()
		apps.On("Fetch", testAppID).Return(&model.Application{ID: testAppID, Status: model.StatusReceived}, nil)
		apps.On("UpdateStatus", testAppID, model.StatusUnderReview).Return(nil)
		apps.On("RefreshViews").Return(nil)
		srv := newTestServer(apps, NewMockReviewsStore())

		req := httptest.NewRequest("POST", "/applications/"+testAppID+"/status", strings.NewReader(`{"status":"under_review"}`))
		req.Header.Set("Authorization", authHeader())
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		apps.AssertExpectations(t)
	})

	t.Run("forbidden transition", func(t *testing.T) {
		apps := NewMockApplicationsStore()
		apps.On("Fetch", testAppID).Return(&model.Application{ID: testAppID, Status: model.StatusReceived}, nil)
		srv := newTestServer(apps, NewMockReviewsStore())

		req := httptest.NewRequest("POST", "/applications/"+testAppID+"/status", strings.NewReader(`{"status":"approved"}`))
		req.Header.Set("Authorization", authHeader())
		w := httptest.NewRecorder()
		srv.Router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		apps.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything)
	})
}
