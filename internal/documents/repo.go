package documents

import "context"

// VerifyUpdate is the mutation applied by a successful review decision.
type VerifyUpdate struct {
	DocumentID string
	Region     string
	ReviewerID string
	Status     string
	Review     string
	Issue      string
}

// Repo defines persistence operations for documents.
type Repo interface {
	Create(ctx context.Context, doc Document) error
	// GetByID fetches a document with no region scoping. Callers enforcing
	// region visibility must use GetInRegion instead.
	GetByID(ctx context.Context, documentID string) (Document, error)
	// GetInRegion fetches a document only if it belongs to the given region;
	// absence and region mismatch both yield ErrNotFound.
	GetInRegion(ctx context.Context, documentID, region string) (Document, error)
	ListByOwner(ctx context.Context, userID string) ([]Document, error)
	ListByRegion(ctx context.Context, region string) ([]Document, error)
	ListAll(ctx context.Context) ([]Document, error)
	// Verify atomically applies the decision iff the document is still pending
	// and in the reviewer's region. Returns ErrNotFound when no document is
	// visible in the region, ErrInvalidTransition when it is already decided.
	Verify(ctx context.Context, update VerifyUpdate) error
	// CountByStatus returns the number of documents per status.
	CountByStatus(ctx context.Context) (map[string]int, error)
	// CountByRegionStatus returns per-region counts of each status.
	CountByRegionStatus(ctx context.Context) (map[string]map[string]int, error)
}
