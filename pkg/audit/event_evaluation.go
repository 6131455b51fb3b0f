package audit

import "fmt"

// EvaluationEvent represents a technical evaluation audit event. It is
// appended after the review upsert succeeds; PreviousOverall carries the
// application's summary score before the write, when one existed.
type EvaluationEvent struct {
	ApplicationID    string
	AdminID          string
	PedagogicalScore int
	WritingScore     int
	AlignmentScore   int
	OverallScore     float64
	PreviousOverall  *float64
}

func (e EvaluationEvent) Action() string {
	return "evaluate"
}

func (e EvaluationEvent) Entity() string {
	return "applications"
}

func (e EvaluationEvent) EntityID() string {
	return e.ApplicationID
}

func (e EvaluationEvent) Actor() string {
	return e.AdminID
}

func (e EvaluationEvent) Message() string {
	return fmt.Sprintf("%s evaluated application %s with overall score %.2f",
		e.AdminID, e.ApplicationID, e.OverallScore)
}

func (e EvaluationEvent) Severity() Severity {
	return SeverityInfo
}

func (e EvaluationEvent) Snapshots() (before, after map[string]any) {
	if e.PreviousOverall != nil {
		before = map[string]any{
			"overall_score": *e.PreviousOverall,
		}
	}
	after = map[string]any{
		"pedagogical_score": e.PedagogicalScore,
		"writing_score":     e.WritingScore,
		"alignment_score":   e.AlignmentScore,
		"overall_score":     e.OverallScore,
	}
	return before, after
}
