package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/Harshmohod/land-verification/internal/users"
)

type fakeStore struct {
	saved map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{saved: make(map[string][]byte)}
}

func (s *fakeStore) Save(ctx context.Context, userID, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	key := userID + "/" + fileName
	s.saved[key] = data
	return key, int64(len(data)), "application/pdf", nil
}

func (s *fakeStore) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := s.saved[storageKey]
	if !ok {
		return nil, fmt.Errorf("no object %q", storageKey)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

type fakeDirectory struct {
	owners map[string]Owner
}

func (d fakeDirectory) GetOwner(ctx context.Context, userID string) (Owner, error) {
	owner, ok := d.owners[userID]
	if !ok {
		return Owner{}, users.ErrNotFound
	}
	return owner, nil
}

func newTestService() (*Service, *MemoryRepo, *fakeStore) {
	repo := NewMemoryRepo()
	store := newFakeStore()
	svc := &Service{
		Store: store,
		Repo:  repo,
		Owners: fakeDirectory{owners: map[string]Owner{
			"citizen-1":  {ID: "citizen-1", Name: "Asha Patil", Role: users.RoleCitizen, Region: "400001"},
			"citizen-2":  {ID: "citizen-2", Name: "Ravi Kumar", Role: users.RoleCitizen, Region: "110001"},
			"reviewer-1": {ID: "reviewer-1", Name: "Reviewer Mumbai", Role: users.RoleReviewer, Region: "400001"},
			"reviewer-2": {ID: "reviewer-2", Name: "Reviewer Delhi", Role: users.RoleReviewer, Region: "110001"},
			"admin-1":    {ID: "admin-1", Name: "System Admin", Role: users.RoleAdmin},
		}},
	}
	return svc, repo, store
}

func mustUpload(t *testing.T, svc *Service, userID, title, fileName string) Document {
	t.Helper()
	doc, err := svc.Upload(context.Background(), userID, title, fileName, strings.NewReader("file-bytes"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	return doc
}

func TestUploadStampsOwnerRegionAndPendingStatus(t *testing.T) {
	svc, _, _ := newTestService()

	doc := mustUpload(t, svc, "citizen-1", "", "deed.pdf")

	if doc.Status != StatusPending {
		t.Fatalf("status = %q, want pending", doc.Status)
	}
	if doc.Region != "400001" {
		t.Fatalf("region = %q, want owner's region", doc.Region)
	}
	if doc.Title != "deed.pdf" {
		t.Fatalf("title = %q, want file name fallback", doc.Title)
	}
	if doc.OwnerName != "Asha Patil" {
		t.Fatalf("owner name = %q", doc.OwnerName)
	}
}

func TestListForScopesByRole(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	mumbai := mustUpload(t, svc, "citizen-1", "mumbai deed", "a.pdf")
	delhi := mustUpload(t, svc, "citizen-2", "delhi deed", "b.pdf")

	own, err := svc.ListFor(ctx, "citizen-1", users.RoleCitizen)
	if err != nil {
		t.Fatalf("ListFor citizen: %v", err)
	}
	if len(own) != 1 || own[0].ID != mumbai.ID {
		t.Fatalf("citizen sees %d docs, want only their own", len(own))
	}

	region, err := svc.ListFor(ctx, "reviewer-2", users.RoleReviewer)
	if err != nil {
		t.Fatalf("ListFor reviewer: %v", err)
	}
	if len(region) != 1 || region[0].ID != delhi.ID {
		t.Fatalf("reviewer sees %d docs, want only their region", len(region))
	}

	all, err := svc.ListFor(ctx, "admin-1", users.RoleAdmin)
	if err != nil {
		t.Fatalf("ListFor admin: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin sees %d docs, want 2", len(all))
	}

	if _, err := svc.ListFor(ctx, "citizen-1", "ghost"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unknown role err = %v, want ErrForbidden", err)
	}
}

func TestVerifyApprovesPendingDocument(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	doc := mustUpload(t, svc, "citizen-1", "deed", "a.pdf")

	if err := svc.Verify(ctx, "reviewer-1", users.RoleReviewer, doc.ID, StatusApproved, "all good", "ignored"); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	got, err := repo.GetByID(ctx, doc.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != StatusApproved {
		t.Fatalf("status = %q, want approved", got.Status)
	}
	if got.ReviewerID != "reviewer-1" {
		t.Fatalf("reviewer id = %q", got.ReviewerID)
	}
	if got.Review != "all good" {
		t.Fatalf("review = %q", got.Review)
	}
	if got.Issue != "" {
		t.Fatalf("issue = %q, want empty on approval", got.Issue)
	}
	if got.VerifiedAt == nil {
		t.Fatal("verified at not set")
	}
}

func TestVerifyRejectedRequiresIssue(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	doc := mustUpload(t, svc, "citizen-1", "deed", "a.pdf")

	err := svc.Verify(ctx, "reviewer-1", users.RoleReviewer, doc.ID, StatusRejected, "", "  ")
	if !errors.Is(err, ErrIssueRequired) {
		t.Fatalf("Verify err = %v, want ErrIssueRequired", err)
	}

	got, _ := repo.GetByID(ctx, doc.ID)
	if got.Status != StatusPending {
		t.Fatalf("status = %q, document must stay pending", got.Status)
	}

	if err := svc.Verify(ctx, "reviewer-1", users.RoleReviewer, doc.ID, StatusRejected, "ignored", "forged stamp"); err != nil {
		t.Fatalf("Verify rejected: %v", err)
	}
	got, _ = repo.GetByID(ctx, doc.ID)
	if got.Status != StatusRejected || got.Issue != "forged stamp" {
		t.Fatalf("got status=%q issue=%q", got.Status, got.Issue)
	}
	if got.Review != "" {
		t.Fatalf("review = %q, want empty on rejection", got.Review)
	}
}

func TestVerifyRejectsBadStatusAndNonReviewers(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	doc := mustUpload(t, svc, "citizen-1", "deed", "a.pdf")

	if err := svc.Verify(ctx, "reviewer-1", users.RoleReviewer, doc.ID, "pending", "", ""); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("bad status err = %v, want ErrInvalidStatus", err)
	}
	if err := svc.Verify(ctx, "citizen-1", users.RoleCitizen, doc.ID, StatusApproved, "", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("citizen err = %v, want ErrForbidden", err)
	}
	if err := svc.Verify(ctx, "admin-1", users.RoleAdmin, doc.ID, StatusApproved, "", ""); !errors.Is(err, ErrForbidden) {
		t.Fatalf("admin err = %v, want ErrForbidden", err)
	}
}

func TestVerifyMasksOtherRegionsAsNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	doc := mustUpload(t, svc, "citizen-1", "deed", "a.pdf")

	outOfRegion := svc.Verify(ctx, "reviewer-2", users.RoleReviewer, doc.ID, StatusApproved, "", "")
	missing := svc.Verify(ctx, "reviewer-2", users.RoleReviewer, "no-such-id", StatusApproved, "", "")

	if !errors.Is(outOfRegion, ErrNotFound) {
		t.Fatalf("out-of-region err = %v, want ErrNotFound", outOfRegion)
	}
	if !errors.Is(missing, ErrNotFound) {
		t.Fatalf("missing err = %v, want ErrNotFound", missing)
	}
}

func TestVerifyDecidedDocumentReturnsInvalidTransition(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	doc := mustUpload(t, svc, "citizen-1", "deed", "a.pdf")

	if err := svc.Verify(ctx, "reviewer-1", users.RoleReviewer, doc.ID, StatusApproved, "", ""); err != nil {
		t.Fatalf("first Verify: %v", err)
	}
	err := svc.Verify(ctx, "reviewer-1", users.RoleReviewer, doc.ID, StatusRejected, "", "late objection")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("second Verify err = %v, want ErrInvalidTransition", err)
	}
}

func TestVerifyConcurrentDecisionsExactlyOneWins(t *testing.T) {
	svc, repo, _ := newTestService()
	ctx := context.Background()
	doc := mustUpload(t, svc, "citizen-1", "deed", "a.pdf")

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Verify(ctx, "reviewer-1", users.RoleReviewer, doc.ID, StatusApproved, "", "")
		}(i)
	}
	wg.Wait()

	var wins int
	for _, err := range errs {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrInvalidTransition):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if wins != 1 {
		t.Fatalf("wins = %d, want exactly 1", wins)
	}

	got, _ := repo.GetByID(ctx, doc.ID)
	if got.Status != StatusApproved {
		t.Fatalf("status = %q", got.Status)
	}
}

func TestOpenFileEnforcesVisibility(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()
	doc := mustUpload(t, svc, "citizen-1", "deed", "a.pdf")

	readBody := func(userID, role string) error {
		got, body, err := svc.OpenFile(ctx, userID, role, doc.ID)
		if err != nil {
			return err
		}
		defer body.Close()
		data, err := io.ReadAll(body)
		if err != nil {
			return err
		}
		if string(data) != "file-bytes" {
			t.Fatalf("body = %q", data)
		}
		if got.ID != doc.ID {
			t.Fatalf("opened %q, want %q", got.ID, doc.ID)
		}
		return nil
	}

	if err := readBody("citizen-1", users.RoleCitizen); err != nil {
		t.Fatalf("owner: %v", err)
	}
	if err := readBody("reviewer-1", users.RoleReviewer); err != nil {
		t.Fatalf("in-region reviewer: %v", err)
	}
	if err := readBody("admin-1", users.RoleAdmin); err != nil {
		t.Fatalf("admin: %v", err)
	}

	if err := readBody("citizen-2", users.RoleCitizen); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other citizen err = %v, want ErrNotFound", err)
	}
	if err := readBody("reviewer-2", users.RoleReviewer); !errors.Is(err, ErrNotFound) {
		t.Fatalf("out-of-region reviewer err = %v, want ErrNotFound", err)
	}
}
