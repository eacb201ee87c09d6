package customer

import (
	"context"
	"testing"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type fakeCustomerRepo struct {
	customers []domain.Customer
	count     int64
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uint64) (domain.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Customer{}, apperror.New(apperror.CodeCustomerNotFound, "customer not found")
}

func (f *fakeCustomerRepo) FindAll(ctx context.Context, limit, offset int) ([]domain.Customer, error) {
	return f.customers, nil
}

func (f *fakeCustomerRepo) Search(ctx context.Context, keyword string, limit, offset int) ([]domain.Customer, error) {
	return f.customers, nil
}

func (f *fakeCustomerRepo) FindBySegmentFilter(ctx context.Context, filter domain.SegmentFilter, limit, offset int) ([]domain.Customer, error) {
	return f.customers, nil
}

func (f *fakeCustomerRepo) CountBySegmentFilter(ctx context.Context, filter domain.SegmentFilter) (int64, error) {
	return f.count, nil
}

func badGenderFilter() domain.SegmentFilter {
	gender := domain.Gender("UNKNOWN")
	return domain.SegmentFilter{Gender: &gender}
}

func TestCountBySegmentFilterRejectsInvalidFilter(t *testing.T) {
	svc := NewCustomerService(&fakeCustomerRepo{count: 100}, validator.New())

	_, err := svc.CountBySegmentFilter(context.Background(), badGenderFilter())
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestPreviewSegmentRejectsInvalidFilter(t *testing.T) {
	svc := NewCustomerService(&fakeCustomerRepo{}, validator.New())

	_, err := svc.PreviewSegment(context.Background(), badGenderFilter(), 1, 20)
	if !apperror.Is(err, apperror.CodeValidation) {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestCountBySegmentFilterValidFilter(t *testing.T) {
	svc := NewCustomerService(&fakeCustomerRepo{count: 320}, validator.New())

	gender := domain.GenderFemale
	count, err := svc.CountBySegmentFilter(context.Background(), domain.SegmentFilter{Gender: &gender})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 320 {
		t.Errorf("count = %d, want 320", count)
	}
}
