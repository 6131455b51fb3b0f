package model

//go:generate go run github.com/dmarkham/enumer -type ApplicationStatus -trimprefix Status -transform snake -sql -json -output status.gen.go

// ApplicationStatus tracks an application through the admissions pipeline.
type ApplicationStatus int

const (
	StatusReceived ApplicationStatus = iota
	StatusUnderReview
	StatusApproved
	StatusRejected
)

// CanTransitionTo reports whether the pipeline allows moving to the
// target status. Decisions are only made from under_review, and a
// decided application can be reopened for review but never flipped
// straight to the opposite decision.
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	switch s {
	case StatusReceived:
		return target == StatusUnderReview
	case StatusUnderReview:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved, StatusRejected:
		return target == StatusUnderReview
	}
	return false
}
