package documents

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Harshmohod/land-verification/internal/shared/metrics"
	"github.com/Harshmohod/land-verification/internal/shared/storage/object"
	"github.com/Harshmohod/land-verification/internal/users"
)

// Owner is the slice of a user record the document workflow needs.
type Owner struct {
	ID     string
	Name   string
	Role   string
	Region string
}

// OwnerDirectory resolves user identities to their role and region. Region is
// read here once at upload or verify time; documents keep the stamped copy.
type OwnerDirectory interface {
	GetOwner(ctx context.Context, userID string) (Owner, error)
}

// Service contains the document lifecycle and review logic.
type Service struct {
	Store  object.ObjectStore
	Repo   Repo
	Owners OwnerDirectory
}

// Upload saves the file bytes and records a pending document stamped with the
// uploader's current region.
func (s *Service) Upload(ctx context.Context, userID, title, fileName string, r io.Reader) (Document, error) {
	if strings.TrimSpace(fileName) == "" {
		return Document{}, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}

	owner, err := s.Owners.GetOwner(ctx, userID)
	if err != nil {
		return Document{}, err
	}

	storageKey, size, mimeType, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return Document{}, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = fileName
	}

	doc := Document{
		ID:         uuid.NewString(),
		UserID:     userID,
		Title:      title,
		FileName:   fileName,
		StorageKey: storageKey,
		MimeType:   mimeType,
		SizeBytes:  size,
		Region:     owner.Region,
		Status:     StatusPending,
		UploadedAt: time.Now().UTC(),
		OwnerName:  owner.Name,
		OwnerRole:  owner.Role,
	}

	if err := s.Repo.Create(ctx, doc); err != nil {
		return Document{}, err
	}

	metrics.DocumentsUploaded.Inc()
	return doc, nil
}

// ListFor returns the documents visible to the caller: citizens see their own,
// reviewers see their whole region, admins see everything.
func (s *Service) ListFor(ctx context.Context, userID, role string) ([]Document, error) {
	switch role {
	case users.RoleAdmin:
		return s.Repo.ListAll(ctx)
	case users.RoleReviewer:
		reviewer, err := s.Owners.GetOwner(ctx, userID)
		if err != nil {
			return nil, err
		}
		return s.Repo.ListByRegion(ctx, reviewer.Region)
	case users.RoleCitizen:
		return s.Repo.ListByOwner(ctx, userID)
	default:
		return nil, ErrForbidden
	}
}

// Verify applies a review decision. Only reviewers may call it, only within
// their own region, and only while the document is still pending.
func (s *Service) Verify(ctx context.Context, reviewerID, role, documentID, status, review, issue string) error {
	if role != users.RoleReviewer {
		return ErrForbidden
	}

	status = strings.TrimSpace(status)
	review = strings.TrimSpace(review)
	issue = strings.TrimSpace(issue)

	switch status {
	case StatusApproved:
		issue = ""
	case StatusRejected:
		if issue == "" {
			return ErrIssueRequired
		}
		review = ""
	default:
		return ErrInvalidStatus
	}

	reviewer, err := s.Owners.GetOwner(ctx, reviewerID)
	if err != nil {
		return err
	}

	err = s.Repo.Verify(ctx, VerifyUpdate{
		DocumentID: documentID,
		Region:     reviewer.Region,
		ReviewerID: reviewerID,
		Status:     status,
		Review:     review,
		Issue:      issue,
	})
	if err != nil {
		return err
	}

	metrics.DocumentsVerified.WithLabelValues(status).Inc()
	return nil
}

// OpenFile streams a stored document for callers allowed to see it: the
// owner, an in-region reviewer, or an admin. Anyone else gets ErrNotFound.
func (s *Service) OpenFile(ctx context.Context, userID, role, documentID string) (Document, io.ReadCloser, error) {
	var doc Document
	var err error

	switch role {
	case users.RoleAdmin:
		doc, err = s.Repo.GetByID(ctx, documentID)
	case users.RoleReviewer:
		var reviewer Owner
		reviewer, err = s.Owners.GetOwner(ctx, userID)
		if err == nil {
			doc, err = s.Repo.GetInRegion(ctx, documentID, reviewer.Region)
		}
	case users.RoleCitizen:
		doc, err = s.Repo.GetByID(ctx, documentID)
		if err == nil && doc.UserID != userID {
			err = ErrNotFound
		}
	default:
		err = ErrForbidden
	}
	if err != nil {
		return Document{}, nil, err
	}

	body, err := s.Store.Open(ctx, doc.StorageKey)
	if err != nil {
		return Document{}, nil, err
	}
	return doc, body, nil
}
