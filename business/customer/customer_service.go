package customer

import (
	"context"
	"fmt"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Customer, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.Customer, error)
	Search(ctx context.Context, keyword string, limit, offset int) ([]domain.Customer, error)
	FindBySegmentFilter(ctx context.Context, filter domain.SegmentFilter, limit, offset int) ([]domain.Customer, error)
	CountBySegmentFilter(ctx context.Context, filter domain.SegmentFilter) (int64, error)
}

type customerService struct {
	customerRepo CustomerRepository
	validate     *validator.Validate
}

func NewCustomerService(customerRepo CustomerRepository, validate *validator.Validate) *customerService {
	return &customerService{
		customerRepo: customerRepo,
		validate:     validate,
	}
}

func (s *customerService) GetCustomerByID(ctx context.Context, id uint64) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get customer by id")
		return domain.Customer{}, fmt.Errorf("context error: %w", err)
	}

	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find customer", err)
		return domain.Customer{}, err
	}

	return customer, nil
}

func (s *customerService) GetCustomers(ctx context.Context, page, size int) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing customers")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	customers, err := s.customerRepo.FindAll(ctx, size, (page-1)*size)
	if err != nil {
		logger.Error("failed to list customers", err)
		return nil, err
	}

	return customers, nil
}

// SearchCustomers matches customers by partial name or phone number.
func (s *customerService) SearchCustomers(ctx context.Context, keyword string, page, size int) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when searching customers")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	customers, err := s.customerRepo.Search(ctx, keyword, size, (page-1)*size)
	if err != nil {
		logger.Error("failed to search customers", "keyword", keyword, err)
		return nil, err
	}

	return customers, nil
}

// CountBySegmentFilter sizes a segment before any message is generated for
// it, so the marketer sees how many customers a filter reaches.
func (s *customerService) CountBySegmentFilter(ctx context.Context, filter domain.SegmentFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when counting segment customers")
		return 0, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(filter); err != nil {
		logger.Error("invalid segment filter", err)
		return 0, apperror.Wrap(apperror.CodeValidation, "invalid segment filter", err)
	}

	count, err := s.customerRepo.CountBySegmentFilter(ctx, filter)
	if err != nil {
		logger.Error("failed to count customers by segment filter", err)
		return 0, err
	}

	return count, nil
}

// PreviewSegment returns a page of the customers a filter matches.
func (s *customerService) PreviewSegment(ctx context.Context, filter domain.SegmentFilter, page, size int) ([]domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when previewing segment")
		return nil, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(filter); err != nil {
		logger.Error("invalid segment filter", err)
		return nil, apperror.Wrap(apperror.CodeValidation, "invalid segment filter", err)
	}

	if page < 1 {
		page = 1
	}
	if size < 1 || size > 100 {
		size = 20
	}

	customers, err := s.customerRepo.FindBySegmentFilter(ctx, filter, size, (page-1)*size)
	if err != nil {
		logger.Error("failed to preview segment customers", err)
		return nil, err
	}

	return customers, nil
}
