package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"

	"gorm.io/gorm"
)

type CustomerRepository struct {
	DB *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{
		DB: db,
	}
}

func (r *CustomerRepository) FindByID(ctx context.Context, id uint64) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	var customer domain.Customer

	err := r.DB.WithContext(ctx).Where("customer_id = ?", id).First(&customer).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Customer{}, apperror.New(apperror.CodeCustomerNotFound, "customer not found").
				WithDetail("customerId", id)
		}
		return domain.Customer{}, fmt.Errorf("failed to find customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var customers []domain.Customer

	err := r.DB.WithContext(ctx).
		Order("customer_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find customers: %w", err)
	}

	return customers, nil
}

// Search matches customers whose name or phone contains the keyword.
func (r *CustomerRepository) Search(ctx context.Context, keyword string, limit, offset int) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var customers []domain.Customer

	pattern := "%" + keyword + "%"
	err := r.DB.WithContext(ctx).
		Where("name ILIKE ? OR phone LIKE ?", pattern, pattern).
		Order("customer_id ASC").
		Limit(limit).
		Offset(offset).
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	return customers, nil
}

// segmentQuery applies the scalar and region criteria of a segment filter.
// A nil criterion does not constrain the result.
func segmentQuery(db *gorm.DB, filter domain.SegmentFilter) *gorm.DB {
	q := db
	if filter.AgeMin != nil {
		q = q.Where("age >= ?", *filter.AgeMin)
	}
	if filter.AgeMax != nil {
		q = q.Where("age <= ?", *filter.AgeMax)
	}
	if filter.Gender != nil {
		q = q.Where("gender = ?", *filter.Gender)
	}
	if len(filter.Regions) > 0 {
		q = q.Where("region IN ?", filter.Regions)
	}
	if filter.MembershipLevel != nil {
		q = q.Where("membership_level = ?", *filter.MembershipLevel)
	}
	if filter.RecencyMaxDays != nil {
		q = q.Where("last_purchase_date >= ?", time.Now().AddDate(0, 0, -*filter.RecencyMaxDays))
	}
	return q
}

func (r *CustomerRepository) FindBySegmentFilter(ctx context.Context, filter domain.SegmentFilter, limit, offset int) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var customers []domain.Customer

	q := segmentQuery(r.DB.WithContext(ctx).Model(&domain.Customer{}), filter)
	err := q.Order("customer_id ASC").Limit(limit).Offset(offset).Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find customers by segment filter: %w", err)
	}

	return customers, nil
}

func (r *CustomerRepository) CountBySegmentFilter(ctx context.Context, filter domain.SegmentFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	var count int64

	q := segmentQuery(r.DB.WithContext(ctx).Model(&domain.Customer{}), filter)
	if err := q.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers by segment filter: %w", err)
	}

	return count, nil
}
