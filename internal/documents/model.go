package documents

import "time"

// Lifecycle statuses. A document is created pending and moves exactly once to
// approved or rejected; both are terminal.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Document is an uploaded file awaiting regional review.
type Document struct {
	ID         string
	UserID     string
	Title      string
	FileName   string
	StorageKey string
	MimeType   string
	SizeBytes  int64
	// Region is copied from the owner at upload time and never recomputed.
	Region     string
	Status     string
	ReviewerID string
	Review     string
	Issue      string
	UploadedAt time.Time
	VerifiedAt *time.Time

	// Joined for presentation; not persisted on the documents row.
	OwnerName string
	OwnerRole string
}

// Decided reports whether the document has left the pending state.
func (d Document) Decided() bool {
	return d.Status != StatusPending
}
