package documents

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo. A single mutex guards
// every operation so Verify keeps the same check-then-set atomicity the SQL
// conditional update provides.
type MemoryRepo struct {
	mu   sync.RWMutex
	docs map[string]*Document // id -> document
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{docs: make(map[string]*Document)}
}

// Create stores a new document.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if doc.Status == "" {
		doc.Status = StatusPending
	}
	stored := doc
	r.docs[doc.ID] = &stored
	return nil
}

// GetByID fetches a document with no region scoping.
func (r *MemoryRepo) GetByID(ctx context.Context, documentID string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[documentID]
	if !ok {
		return Document{}, ErrNotFound
	}
	return *doc, nil
}

// GetInRegion fetches a document only if it belongs to the given region.
func (r *MemoryRepo) GetInRegion(ctx context.Context, documentID, region string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[documentID]
	if !ok || doc.Region != region {
		return Document{}, ErrNotFound
	}
	return *doc, nil
}

// ListByOwner lists a user's documents, newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, userID string) ([]Document, error) {
	return r.list(ctx, func(doc *Document) bool { return doc.UserID == userID })
}

// ListByRegion lists every document in a region, newest first.
func (r *MemoryRepo) ListByRegion(ctx context.Context, region string) ([]Document, error) {
	return r.list(ctx, func(doc *Document) bool { return doc.Region == region })
}

// ListAll lists every document, newest first.
func (r *MemoryRepo) ListAll(ctx context.Context) ([]Document, error) {
	return r.list(ctx, func(*Document) bool { return true })
}

// Verify applies the decision under the write lock; the still-pending and
// in-region checks happen in the same critical section as the mutation.
func (r *MemoryRepo) Verify(ctx context.Context, update VerifyUpdate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[update.DocumentID]
	if !ok || doc.Region != update.Region {
		return ErrNotFound
	}
	if doc.Status != StatusPending {
		return ErrInvalidTransition
	}

	now := time.Now().UTC()
	doc.Status = update.Status
	doc.ReviewerID = update.ReviewerID
	doc.Review = update.Review
	doc.Issue = update.Issue
	doc.VerifiedAt = &now
	return nil
}

// CountByStatus returns the number of documents per status.
func (r *MemoryRepo) CountByStatus(ctx context.Context) (map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]int)
	for _, doc := range r.docs {
		counts[doc.Status]++
	}
	return counts, nil
}

// CountByRegionStatus returns per-region counts of each status.
func (r *MemoryRepo) CountByRegionStatus(ctx context.Context) (map[string]map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := make(map[string]map[string]int)
	for _, doc := range r.docs {
		if counts[doc.Region] == nil {
			counts[doc.Region] = make(map[string]int)
		}
		counts[doc.Region][doc.Status]++
	}
	return counts, nil
}

func (r *MemoryRepo) list(ctx context.Context, keep func(*Document) bool) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Document
	for _, doc := range r.docs {
		if keep(doc) {
			out = append(out, *doc)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UploadedAt.After(out[j].UploadedAt)
	})
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
