package services

import (
	"context"
	"time"

	"ecoreport/internal/adapters/persistence/repositories"
	"ecoreport/internal/core/domain"
)

// DashboardService handles dashboard operations
type DashboardService struct {
	complaintRepo repositories.ComplaintRepository
	gate          *AuthorizationService
	now           Clock
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(complaintRepo repositories.ComplaintRepository, gate *AuthorizationService) *DashboardService {
	return &DashboardService{
		complaintRepo: complaintRepo,
		gate:          gate,
		now:           time.Now,
	}
}

// DashboardStats is a point-in-time count of complaints
type DashboardStats struct {
	Total        int64
	Pending      int64
	Resolved     int64
	Overdue      int64
	ByStatus     map[domain.Status]int64
	AssignedToMe int64
	GeneratedAt  time.Time
}

// GetDashboardStats returns the staff dashboard counts. Every call
// reads the store; nothing is cached.
func (s *DashboardService) GetDashboardStats(ctx context.Context, principalID uint) (*DashboardStats, error) {
	caller, err := s.gate.Authorize(ctx, principalID, domain.CapViewAllComplaints)
	if err != nil {
		return nil, err
	}

	stats, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	officerID := caller.ID
	_, mine, err := s.complaintRepo.List(ctx, repositories.ComplaintFilter{OfficerID: &officerID, Limit: 1})
	if err != nil {
		return nil, err
	}
	stats.AssignedToMe = mine

	return stats, nil
}

// Snapshot counts complaints without an authorization check. It backs
// both the dashboard and the scheduled overdue report.
func (s *DashboardService) Snapshot(ctx context.Context) (*DashboardStats, error) {
	now := s.now()
	stats := &DashboardStats{
		ByStatus:    make(map[domain.Status]int64, len(domain.Statuses())),
		GeneratedAt: now,
	}

	var err error
	if stats.Total, err = s.complaintRepo.Count(ctx); err != nil {
		return nil, err
	}
	for _, status := range domain.Statuses() {
		n, err := s.complaintRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		stats.ByStatus[status] = n
	}
	stats.Pending = stats.ByStatus[domain.StatusPending]
	stats.Resolved = stats.ByStatus[domain.StatusResolved]

	if stats.Overdue, err = s.complaintRepo.CountOverdue(ctx, now); err != nil {
		return nil, err
	}

	return stats, nil
}
