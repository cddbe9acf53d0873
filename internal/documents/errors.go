package documents

import "errors"

var (
	// ErrNotFound covers both truly missing documents and documents outside
	// the caller's region; the two are deliberately indistinguishable.
	ErrNotFound = errors.New("document not found")
	// ErrForbidden is returned when the caller's role cannot perform the operation.
	ErrForbidden = errors.New("operation not allowed for role")
	// ErrInvalidTransition is returned when verifying an already-decided document.
	ErrInvalidTransition = errors.New("document already decided")
	// ErrInvalidStatus is returned for verify statuses other than approved/rejected.
	ErrInvalidStatus = errors.New("status must be approved or rejected")
	// ErrIssueRequired is returned when a rejection carries no issue description.
	ErrIssueRequired = errors.New("issue description is required to reject")
	// ErrInvalidInput covers malformed upload input.
	ErrInvalidInput = errors.New("invalid input")
)
