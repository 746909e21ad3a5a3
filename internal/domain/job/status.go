package job

import "strings"

// ApplicationStatus is a closed enum; unknown labels never enter the
// domain.
type ApplicationStatus string

const (
	ApplicationAwaiting  ApplicationStatus = "awaiting"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch ApplicationStatus(strings.ToLower(strings.TrimSpace(s))) {
	case ApplicationAwaiting:
		return ApplicationAwaiting, nil
	case ApplicationReviewing:
		return ApplicationReviewing, nil
	case ApplicationAccepted:
		return ApplicationAccepted, nil
	case ApplicationRejected:
		return ApplicationRejected, nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// CanTransition reports whether moving from s to next is allowed under the
// strict forward pipeline: awaiting -> reviewing -> {accepted, rejected}.
// When strict mode is off the caller skips this check entirely.
func (s ApplicationStatus) CanTransition(next ApplicationStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case ApplicationAwaiting:
		return next == ApplicationReviewing
	case ApplicationReviewing:
		return next == ApplicationAccepted || next == ApplicationRejected
	default:
		return false
	}
}
