package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/Harshmohod/land-verification/internal/documents"
	"github.com/Harshmohod/land-verification/internal/users"
)

// Overview is a point-in-time snapshot of the system, recomputed per request.
type Overview struct {
	Users     UserCounts     `json:"users"`
	Documents DocumentCounts `json:"documents"`
	Regions   []RegionCounts `json:"regions"`
}

type UserCounts struct {
	Total     int `json:"total"`
	Citizens  int `json:"citizens"`
	Reviewers int `json:"reviewers"`
	Admins    int `json:"admins"`
}

type DocumentCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// RegionCounts breaks document statuses down for a single region.
type RegionCounts struct {
	Region   string `json:"region"`
	Total    int    `json:"total"`
	Pending  int    `json:"pending"`
	Approved int    `json:"approved"`
	Rejected int    `json:"rejected"`
}

// Service aggregates counts from the user and document repositories.
type Service struct {
	Users     users.Repo
	Documents documents.Repo
}

// NewService constructs a Service.
func NewService(userRepo users.Repo, docRepo documents.Repo) *Service {
	return &Service{Users: userRepo, Documents: docRepo}
}

// Overview computes the admin dashboard snapshot.
func (s *Service) Overview(ctx context.Context) (Overview, error) {
	byRole, err := s.Users.CountByRole(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("count users: %w", err)
	}
	byStatus, err := s.Documents.CountByStatus(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("count documents: %w", err)
	}
	byRegion, err := s.Documents.CountByRegionStatus(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("count documents by region: %w", err)
	}

	ov := Overview{
		Users: UserCounts{
			Citizens:  byRole[users.RoleCitizen],
			Reviewers: byRole[users.RoleReviewer],
			Admins:    byRole[users.RoleAdmin],
		},
		Documents: DocumentCounts{
			Pending:  byStatus[documents.StatusPending],
			Approved: byStatus[documents.StatusApproved],
			Rejected: byStatus[documents.StatusRejected],
		},
	}
	ov.Users.Total = ov.Users.Citizens + ov.Users.Reviewers + ov.Users.Admins
	ov.Documents.Total = ov.Documents.Pending + ov.Documents.Approved + ov.Documents.Rejected

	ov.Regions = make([]RegionCounts, 0, len(byRegion))
	for region, counts := range byRegion {
		rc := RegionCounts{
			Region:   region,
			Pending:  counts[documents.StatusPending],
			Approved: counts[documents.StatusApproved],
			Rejected: counts[documents.StatusRejected],
		}
		rc.Total = rc.Pending + rc.Approved + rc.Rejected
		ov.Regions = append(ov.Regions, rc)
	}
	sort.Slice(ov.Regions, func(i, j int) bool { return ov.Regions[i].Region < ov.Regions[j].Region })

	return ov, nil
}
