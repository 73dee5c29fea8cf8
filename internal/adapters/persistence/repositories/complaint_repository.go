package repositories

import (
	"context"
	"fmt"
	"time"

	"ecoreport/internal/adapters/persistence/models"
	"ecoreport/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// closedStatuses are excluded from the overdue count
var closedStatuses = []string{string(domain.StatusResolved), string(domain.StatusClosed)}

// complaintRepository implements ComplaintRepository interface
type complaintRepository struct {
	db *gorm.DB
}

// NewComplaintRepository creates a new complaint repository
func NewComplaintRepository(db *gorm.DB) ComplaintRepository {
	return &complaintRepository{db: db}
}

// Create inserts a new complaint
func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	row := models.ComplaintFromDomain(complaint)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(row).Error; err != nil {
		return translate(err, "complaint")
	}
	complaint.ID = row.ID
	return nil
}

// GetByComplaintID gets a complaint by its public identifier
func (r *complaintRepository) GetByComplaintID(ctx context.Context, complaintID string) (*domain.Complaint, error) {
	var row models.Complaint
	err := r.db.WithContext(ctx).Where("complaint_id = ?", complaintID).First(&row).Error
	if err != nil {
		return nil, translate(err, "complaint")
	}
	return row.ToDomain(), nil
}

// GetByOwner gets a complaint only if ownerID filed it
func (r *complaintRepository) GetByOwner(ctx context.Context, ownerID uint, complaintID string) (*domain.Complaint, error) {
	var row models.Complaint
	err := r.db.WithContext(ctx).
		Where("complaint_id = ?", complaintID).
		Where("user_id = ?", ownerID).
		First(&row).Error
	if err != nil {
		return nil, translate(err, "complaint")
	}
	return row.ToDomain(), nil
}

// ListByOwner lists a citizen's complaints, newest first
func (r *complaintRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*domain.Complaint, error) {
	var rows []*models.Complaint
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, translate(err, "complaints")
	}
	return toDomainList(rows), nil
}

// List lists complaints with filter and pagination, newest first
func (r *complaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]*domain.Complaint, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Complaint{})

	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}
	if filter.Category != nil {
		query = query.Where("category = ?", string(*filter.Category))
	}
	if filter.OfficerID != nil {
		query = query.Where("assigned_officer_id = ?", *filter.OfficerID)
	}
	if filter.OverdueAt != nil {
		query = overdueScope(query, *filter.OverdueAt)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, translate(err, "complaints")
	}

	var rows []*models.Complaint
	err := query.
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&rows).Error
	if err != nil {
		return nil, 0, translate(err, "complaints")
	}

	return toDomainList(rows), total, nil
}

// Update saves a complaint guarded by its version
func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	row := models.ComplaintFromDomain(complaint)
	expected := row.Version
	row.Version = expected + 1

	res := r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("id = ? AND version = ?", row.ID, expected).
		Select("*").
		Omit("id", "complaint_id", "user_id", "created_at", "due_date", clause.Associations).
		Updates(row)
	if res.Error != nil {
		return translate(res.Error, "complaint")
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: complaint %s changed since it was read", domain.ErrConflict, complaint.ComplaintID)
	}

	complaint.Version = row.Version
	return nil
}

// Count counts all complaints
func (r *complaintRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Complaint{}).Count(&count).Error
	return count, translate(err, "complaints")
}

// CountByStatus counts complaints in one status
func (r *complaintRepository) CountByStatus(ctx context.Context, status domain.Status) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	return count, translate(err, "complaints")
}

// CountOverdue counts open complaints whose due date passed before now
func (r *complaintRepository) CountOverdue(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := overdueScope(r.db.WithContext(ctx).Model(&models.Complaint{}), now).Count(&count).Error
	return count, translate(err, "complaints")
}

// overdueScope mirrors domain.Complaint.IsOverdue in SQL
func overdueScope(query *gorm.DB, now time.Time) *gorm.DB {
	return query.
		Where("due_date < ?", now).
		Where("status NOT IN ?", closedStatuses)
}

func toDomainList(rows []*models.Complaint) []*domain.Complaint {
	out := make([]*domain.Complaint, len(rows))
	for i, row := range rows {
		out[i] = row.ToDomain()
	}
	return out
}
