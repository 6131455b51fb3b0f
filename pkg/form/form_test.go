package form

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestEvaluationFormValidate(t *testing.T) {
	valid := func() EvaluationForm {
		return EvaluationForm{
			PedagogicalScore: intPtr(8),
			WritingScore:     intPtr(0),
			AlignmentScore:   intPtr(10),
		}
	}

	t.Run("valid including boundary scores", func(t *testing.T) {
		f := valid()
		assert.NoError(t, f.Validate(0, 10))
	})

	t.Run("missing score", func(t *testing.T) {
		f := valid()
		f.WritingScore = nil
		err := f.Validate(0, 10)
		assert.ErrorContains(t, err, "writing_score is required")
	})

	t.Run("score out of range", func(t *testing.T) {
		f := valid()
		f.AlignmentScore = intPtr(11)
		err := f.Validate(0, 10)
		assert.ErrorContains(t, err, "alignment_score must be between 0 and 10")

		f.AlignmentScore = intPtr(-1)
		assert.Error(t, f.Validate(0, 10))
	})
}

func TestApplicationFormValidate(t *testing.T) {
	valid := func() ApplicationForm {
		return ApplicationForm{
			ApplicantName: "João Pereira",
			Email:         "joao@example.com",
			Phone:         "+55 83 99999-0000",
			Motivation:    "I want to teach.",
		}
	}

	t.Run("valid", func(t *testing.T) {
		f := valid()
		assert.NoError(t, f.Validate())
	})

	t.Run("trims whitespace", func(t *testing.T) {
		f := valid()
		f.Email = "  joao@example.com  "
		assert.NoError(t, f.Validate())
		assert.Equal(t, "joao@example.com", f.Email)
	})

	t.Run("bad email", func(t *testing.T) {
		f := valid()
		f.Email = "not-an-address"
		assert.ErrorContains(t, f.Validate(), "email is not a valid address")
	})

	t.Run("missing fields", func(t *testing.T) {
		f := valid()
		f.ApplicantName = "   "
		assert.ErrorContains(t, f.Validate(), "applicant_name is required")

		f = valid()
		f.Motivation = ""
		assert.ErrorContains(t, f.Validate(), "motivation is required")
	})

	t.Run("motivation too long", func(t *testing.T) {
		f := valid()
		f.Motivation = strings.Repeat("a", maxMotivationLen+1)
		assert.ErrorContains(t, f.Validate(), "motivation exceeds")
	})
}
