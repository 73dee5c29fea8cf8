package services

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"ecoreport/internal/adapters/persistence/repositories"
	"ecoreport/internal/core/domain"
)

// memComplaints is an in-memory ComplaintRepository with the same version
// semantics as the gorm one. Records are copied in and out.
type memComplaints struct {
	mu     sync.Mutex
	nextID uint
	rows   map[string]domain.Complaint
}

func newMemComplaints() *memComplaints {
	return &memComplaints{rows: map[string]domain.Complaint{}}
}

func (r *memComplaints) Create(_ context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[c.ComplaintID]; ok {
		return fmt.Errorf("%w: duplicate complaint", domain.ErrConflict)
	}
	r.nextID++
	c.ID = r.nextID
	r.rows[c.ComplaintID] = *c
	return nil
}

func (r *memComplaints) GetByComplaintID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("%w: complaint", domain.ErrNotFound)
	}
	return &c, nil
}

func (r *memComplaints) GetByOwner(ctx context.Context, ownerID uint, id string) (*domain.Complaint, error) {
	c, err := r.GetByComplaintID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !c.IsOwnedBy(ownerID) {
		return nil, fmt.Errorf("%w: complaint", domain.ErrNotFound)
	}
	return c, nil
}

func (r *memComplaints) ListByOwner(_ context.Context, ownerID uint) ([]*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Complaint
	for _, c := range r.rows {
		if c.OwnerID == ownerID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memComplaints) List(_ context.Context, f repositories.ComplaintFilter) ([]*domain.Complaint, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*domain.Complaint
	for _, c := range r.rows {
		c := c
		switch {
		case f.Status != nil && c.Status != *f.Status:
		case f.Category != nil && c.Category != *f.Category:
		case f.OfficerID != nil && (c.AssignedOfficerID == nil || *c.AssignedOfficerID != *f.OfficerID):
		case f.OverdueAt != nil && !c.IsOverdue(*f.OverdueAt):
		default:
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

	total := int64(len(all))
	if f.Offset >= len(all) {
		return []*domain.Complaint{}, total, nil
	}
	end := len(all)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}
	return all[f.Offset:end], total, nil
}

func (r *memComplaints) Update(_ context.Context, c *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.rows[c.ComplaintID]
	if !ok || stored.Version != c.Version {
		return fmt.Errorf("%w: complaint %s", domain.ErrConflict, c.ComplaintID)
	}
	c.Version++
	r.rows[c.ComplaintID] = *c
	return nil
}

func (r *memComplaints) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rows)), nil
}

func (r *memComplaints) CountByStatus(_ context.Context, s domain.Status) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.rows {
		if c.Status == s {
			n++
		}
	}
	return n, nil
}

func (r *memComplaints) CountOverdue(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.rows {
		if c.IsOverdue(now) {
			n++
		}
	}
	return n, nil
}

// memUsers is a fixed set of users keyed by ID
type memUsers map[uint]*domain.User

func (u memUsers) Create(_ context.Context, user *domain.User) error {
	user.ID = uint(len(u) + 1)
	u[user.ID] = user
	return nil
}

func (u memUsers) GetByID(_ context.Context, id uint) (*domain.User, error) {
	if user, ok := u[id]; ok {
		return user, nil
	}
	return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
}

func (u memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range u {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
}

func (u memUsers) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := u.GetByEmail(ctx, email)
	return err == nil, nil
}

// clock is a settable test clock
type clock struct{ t time.Time }

func (c *clock) now() time.Time          { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }
