// Package form holds the request payloads accepted over HTTP and their
// validation. Handlers decode into these types and validate before
// anything touches storage.
package form

import "fmt"

// EvaluationForm is the submitted evaluation payload. Score fields are
// pointers so a missing field is distinguishable from a zero score.
type EvaluationForm struct {
	PedagogicalScore *int   `json:"pedagogical_score"`
	WritingScore     *int   `json:"writing_score"`
	AlignmentScore   *int   `json:"alignment_score"`
	Comments         string `json:"comments"`
}

// Validate checks that all three scores are present and within the
// configured range
func (f *EvaluationForm) Validate(min, max int) error {
	for _, score := range []struct {
		name  string
		value *int
	}{
		{"pedagogical_score", f.PedagogicalScore},
		{"writing_score", f.WritingScore},
		{"alignment_score", f.AlignmentScore},
	} {
		if score.value == nil {
			return fmt.Errorf("%s is required", score.name)
		}
		if *score.value < min || *score.value > max {
			return fmt.Errorf("%s must be between %d and %d", score.name, min, max)
		}
	}
	return nil
}
