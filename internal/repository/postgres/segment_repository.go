package postgres

import (
	"context"
	"errors"
	"fmt"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"

	"gorm.io/gorm"
)

type SegmentRepository struct {
	DB *gorm.DB
}

func NewSegmentRepository(db *gorm.DB) *SegmentRepository {
	return &SegmentRepository{
		DB: db,
	}
}

func (r *SegmentRepository) Create(ctx context.Context, segment *domain.Segment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(segment).Error; err != nil {
		return fmt.Errorf("failed to create segment: %w", err)
	}

	return nil
}

func (r *SegmentRepository) FindByID(ctx context.Context, id uint64) (domain.Segment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Segment{}, fmt.Errorf("context error: %w", err)
	}

	var segment domain.Segment

	err := r.DB.WithContext(ctx).Where("segment_id = ?", id).First(&segment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Segment{}, apperror.New(apperror.CodeSegmentNotFound, "segment not found").
				WithDetail("segmentId", id)
		}
		return domain.Segment{}, fmt.Errorf("failed to find segment: %w", err)
	}

	return segment, nil
}

func (r *SegmentRepository) FindAll(ctx context.Context) ([]domain.Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var segments []domain.Segment

	err := r.DB.WithContext(ctx).Order("segment_id ASC").Find(&segments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find segments: %w", err)
	}

	return segments, nil
}

// nullableScalarWhere matches a nullable column against an optional value,
// treating nil as IS NULL so that distinct filters never collide.
func nullableScalarWhere[T any](q *gorm.DB, column string, val *T) *gorm.DB {
	if val == nil {
		return q.Where(column + " IS NULL")
	}
	return q.Where(column+" = ?", *val)
}

// FindByScalarFilters returns segments whose scalar criteria exactly match
// the filter. Region set equality cannot be expressed as a simple predicate
// on the JSON column, the caller compares regions itself.
func (r *SegmentRepository) FindByScalarFilters(ctx context.Context, filter domain.SegmentFilter) ([]domain.Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var segments []domain.Segment

	q := r.DB.WithContext(ctx).Model(&domain.Segment{})
	q = nullableScalarWhere(q, "age_min", filter.AgeMin)
	q = nullableScalarWhere(q, "age_max", filter.AgeMax)
	q = nullableScalarWhere(q, "gender", filter.Gender)
	q = nullableScalarWhere(q, "membership_level", filter.MembershipLevel)
	q = nullableScalarWhere(q, "recency_max_days", filter.RecencyMaxDays)

	if err := q.Order("segment_id ASC").Find(&segments).Error; err != nil {
		return nil, fmt.Errorf("failed to find segments by filters: %w", err)
	}

	return segments, nil
}

func (r *SegmentRepository) UpdateCustomerCount(ctx context.Context, id uint64, count int64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Segment{}).
		Where("segment_id = ?", id).
		Update("target_customer_count", count)
	if result.Error != nil {
		return fmt.Errorf("failed to update segment customer count: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.CodeSegmentNotFound, "segment not found").
			WithDetail("segmentId", id)
	}

	return nil
}
