package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Harshmohod/land-verification/internal/documents"
	"github.com/Harshmohod/land-verification/internal/users"
)

func seedUser(t *testing.T, repo users.Repo, role, region string) users.User {
	t.Helper()
	u := users.User{
		ID:        uuid.NewString(),
		Username:  uuid.NewString(),
		Role:      role,
		Name:      "user",
		Region:    region,
		CreatedAt: time.Now().UTC(),
	}
	if err := repo.Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func seedDoc(t *testing.T, repo documents.Repo, ownerID, region, status string) {
	t.Helper()
	err := repo.Create(context.Background(), documents.Document{
		ID:         uuid.NewString(),
		UserID:     ownerID,
		Title:      "doc",
		FileName:   "doc.pdf",
		Region:     region,
		Status:     status,
		UploadedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed doc: %v", err)
	}
}

func TestOverviewAggregatesRolesStatusesAndRegions(t *testing.T) {
	userRepo := users.NewMemoryRepo()
	docRepo := documents.NewMemoryRepo()
	svc := NewService(userRepo, docRepo)

	seedUser(t, userRepo, users.RoleAdmin, "")
	citizen := seedUser(t, userRepo, users.RoleCitizen, "400001")
	other := seedUser(t, userRepo, users.RoleCitizen, "110001")
	seedUser(t, userRepo, users.RoleReviewer, "400001")

	seedDoc(t, docRepo, citizen.ID, "400001", documents.StatusPending)
	seedDoc(t, docRepo, citizen.ID, "400001", documents.StatusApproved)
	seedDoc(t, docRepo, other.ID, "110001", documents.StatusRejected)

	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if ov.Users.Total != 4 || ov.Users.Citizens != 2 || ov.Users.Reviewers != 1 || ov.Users.Admins != 1 {
		t.Fatalf("users = %+v", ov.Users)
	}
	if ov.Documents.Total != 3 || ov.Documents.Pending != 1 || ov.Documents.Approved != 1 || ov.Documents.Rejected != 1 {
		t.Fatalf("documents = %+v", ov.Documents)
	}

	if len(ov.Regions) != 2 {
		t.Fatalf("regions = %+v", ov.Regions)
	}
	// Sorted by region code.
	if ov.Regions[0].Region != "110001" || ov.Regions[0].Rejected != 1 || ov.Regions[0].Total != 1 {
		t.Fatalf("region[0] = %+v", ov.Regions[0])
	}
	if ov.Regions[1].Region != "400001" || ov.Regions[1].Pending != 1 || ov.Regions[1].Approved != 1 || ov.Regions[1].Total != 2 {
		t.Fatalf("region[1] = %+v", ov.Regions[1])
	}
}

func TestOverviewEmptySystemIsAllZeroes(t *testing.T) {
	svc := NewService(users.NewMemoryRepo(), documents.NewMemoryRepo())

	ov, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if ov.Users.Total != 0 || ov.Documents.Total != 0 || len(ov.Regions) != 0 {
		t.Fatalf("overview = %+v", ov)
	}
}
