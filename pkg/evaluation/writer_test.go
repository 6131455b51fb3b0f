package evaluation

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cidadeviva/edu-admissions/pkg/audit"
	"github.com/cidadeviva/edu-admissions/pkg/model"
	"github.com/cidadeviva/edu-admissions/pkg/server/store"
)

func TestMain(m *testing.M) {
	audit.SetEnabled(false)
	os.Exit(m.Run())
}

type fakeApplications struct {
	store.ApplicationsStore
	apps map[string]*model.Application

	scoreErr   error
	refreshErr error

	setScores []float64
	refreshes int
}

func (f *fakeApplications) Fetch(id string) (*model.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, store.ErrApplicationNotFound
	}
	copied := *app
	return &copied, nil
}

func (f *fakeApplications) SetOverallScore(id string, score float64) error {
	if f.scoreErr != nil {
		return f.scoreErr
	}
	f.setScores = append(f.setScores, score)
	s := score
	f.apps[id].OverallScore = &s
	return nil
}

func (f *fakeApplications) RefreshViews() error {
	if f.refreshErr != nil {
		return f.refreshErr
	}
	f.refreshes++
	return nil
}

type fakeReviews struct {
	store.ReviewsStore
	upsertErr error
	rows      map[string]*model.ApplicationReview
}

func reviewKey(r *model.ApplicationReview) string {
	return r.ApplicationID + "/" + r.AdminID
}

func (f *fakeReviews) Upsert(r *model.ApplicationReview) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	if f.rows == nil {
		f.rows = make(map[string]*model.ApplicationReview)
	}
	copied := *r
	f.rows[reviewKey(r)] = &copied
	return nil
}

const appID = "33333333-3333-3333-3333-333333333333"

func testWriter() (*Writer, *fakeApplications, *fakeReviews) {
	apps := &fakeApplications{apps: map[string]*model.Application{
		appID: {ID: appID, Status: model.StatusUnderReview},
	}}
	reviews := &fakeReviews{}
	return NewWriter(apps, reviews), apps, reviews
}

func submission() Submission {
	return Submission{
		ApplicationID:    appID,
		AdminID:          "admin-1",
		PedagogicalScore: 8,
		WritingScore:     7,
		AlignmentScore:   9,
		Comments:         "solid candidate",
	}
}

func TestSubmit(t *testing.T) {
	t.Run("writes review, summary and views", func(t *testing.T) {
		w, apps, reviews := testWriter()

		review, err := w.Submit(submission())
		require.NoError(t, err)
		assert.Equal(t, 8.0, review.OverallScore)
		assert.Len(t, reviews.rows, 1)
		assert.Equal(t, []float64{8.0}, apps.setScores)
		assert.Equal(t, 1, apps.refreshes)
	})

	t.Run("overall is the mean rounded to two decimals", func(t *testing.T) {
		w, _, _ := testWriter()

		sub := submission()
		sub.PedagogicalScore, sub.WritingScore, sub.AlignmentScore = 10, 9, 9
		review, err := w.Submit(sub)
		require.NoError(t, err)
		// 28/3 = 9.333... rounds to 9.33
		assert.Equal(t, 9.33, review.OverallScore)

		sub.PedagogicalScore, sub.WritingScore, sub.AlignmentScore = 10, 10, 9
		review, err = w.Submit(sub)
		require.NoError(t, err)
		// 29/3 = 9.666... rounds to 9.67
		assert.Equal(t, 9.67, review.OverallScore)
	})

	t.Run("resubmission overwrites in place", func(t *testing.T) {
		w, apps, reviews := testWriter()

		_, err := w.Submit(submission())
		require.NoError(t, err)

		sub := submission()
		sub.PedagogicalScore, sub.WritingScore, sub.AlignmentScore = 5, 5, 5
		sub.Comments = "second thoughts"
		review, err := w.Submit(sub)
		require.NoError(t, err)

		assert.Len(t, reviews.rows, 1)
		assert.Equal(t, 5.0, review.OverallScore)
		assert.Equal(t, []float64{8.0, 5.0}, apps.setScores)
	})

	t.Run("unknown application", func(t *testing.T) {
		w, _, reviews := testWriter()

		sub := submission()
		sub.ApplicationID = "44444444-4444-4444-4444-444444444444"
		_, err := w.Submit(sub)
		assert.ErrorIs(t, err, store.ErrApplicationNotFound)
		assert.Empty(t, reviews.rows)
	})

	t.Run("review failure aborts cleanly", func(t *testing.T) {
		w, apps, reviews := testWriter()
		reviews.upsertErr = errors.New("deadlock detected")

		_, err := w.Submit(submission())
		require.Error(t, err)

		var partial *PartialWriteError
		assert.False(t, errors.As(err, &partial))
		assert.Empty(t, apps.setScores)
		assert.Equal(t, 0, apps.refreshes)
	})

	t.Run("summary failure reports a partial write", func(t *testing.T) {
		w, apps, reviews := testWriter()
		apps.scoreErr = errors.New("connection reset")

		review, err := w.Submit(submission())
		require.Error(t, err)

		var partial *PartialWriteError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, "summary score update", partial.Step)
		assert.NotNil(t, review)
		assert.Len(t, reviews.rows, 1)
	})

	t.Run("view refresh failure reports a partial write", func(t *testing.T) {
		w, apps, reviews := testWriter()
		apps.refreshErr = errors.New("relation is being refreshed")

		review, err := w.Submit(submission())
		require.Error(t, err)

		var partial *PartialWriteError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, "view refresh", partial.Step)
		assert.NotNil(t, review)
		assert.Len(t, reviews.rows, 1)
		assert.Len(t, apps.setScores, 1)
	})
}

func TestSubmitAuditTrail(t *testing.T) {
	var buf bytes.Buffer
	audit.DefaultLogger.SetWriter(&buf)
	audit.SetEnabled(true)
	defer func() {
		audit.SetEnabled(false)
		audit.DefaultLogger.SetWriter(os.Stdout)
	}()

	t.Run("full write leaves an entry", func(t *testing.T) {
		buf.Reset()
		w, _, _ := testWriter()

		_, err := w.Submit(submission())
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "evaluate")
		assert.Contains(t, buf.String(), appID)
	})

	t.Run("degraded write still leaves an entry", func(t *testing.T) {
		buf.Reset()
		w, apps, reviews := testWriter()
		apps.scoreErr = errors.New("connection reset")

		_, err := w.Submit(submission())
		var partial *PartialWriteError
		require.ErrorAs(t, err, &partial)

		// The review is durable, so its trail must survive the
		// degraded summary update.
		assert.Len(t, reviews.rows, 1)
		assert.Contains(t, buf.String(), "evaluate")
		assert.Contains(t, buf.String(), appID)
	})

	t.Run("rejected write leaves none", func(t *testing.T) {
		buf.Reset()
		w, _, reviews := testWriter()
		reviews.upsertErr = errors.New("deadlock detected")

		_, err := w.Submit(submission())
		require.Error(t, err)
		assert.Empty(t, reviews.rows)
		assert.Empty(t, buf.String())
	})
}
