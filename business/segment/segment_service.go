package segment

import (
	"context"
	"encoding/json"
	"fmt"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/logger"
)

// SegmentRepository contract interface
type SegmentRepository interface {
	Create(ctx context.Context, segment *domain.Segment) error
	FindByID(ctx context.Context, id uint64) (domain.Segment, error)
	FindAll(ctx context.Context) ([]domain.Segment, error)
	FindByScalarFilters(ctx context.Context, filter domain.SegmentFilter) ([]domain.Segment, error)
	UpdateCustomerCount(ctx context.Context, id uint64, count int64) error
}

// CustomerRepository contract interface
type CustomerRepository interface {
	CountBySegmentFilter(ctx context.Context, filter domain.SegmentFilter) (int64, error)
}

type segmentService struct {
	segmentRepo  SegmentRepository
	customerRepo CustomerRepository
}

func NewSegmentService(segmentRepo SegmentRepository, customerRepo CustomerRepository) *segmentService {
	return &segmentService{
		segmentRepo:  segmentRepo,
		customerRepo: customerRepo,
	}
}

// FindOrCreate returns the segment matching the filter, creating it when no
// existing one matches. Scalar criteria are matched in SQL, regions are
// compared as sets here. Two concurrent calls with a brand new filter can
// both create a row; the first one found wins on later calls.
func (s *segmentService) FindOrCreate(ctx context.Context, filter domain.SegmentFilter) (domain.Segment, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when resolving segment")
		return domain.Segment{}, fmt.Errorf("context error: %w", err)
	}

	existing, err := s.segmentRepo.FindByScalarFilters(ctx, filter)
	if err != nil {
		logger.Error("failed to look up segments by filters", err)
		return domain.Segment{}, err
	}

	for _, segment := range existing {
		regions, err := decodeRegions(segment.Regions)
		if err != nil {
			logger.Warn("segment has unreadable regions, skipping", "segmentId", segment.ID)
			continue
		}
		if filter.RegionSetEquals(regions) {
			logger.Info("found existing segment", "segmentId", segment.ID)
			return segment, nil
		}
	}

	count, err := s.customerRepo.CountBySegmentFilter(ctx, filter)
	if err != nil {
		logger.Error("failed to count customers for new segment", err)
		return domain.Segment{}, err
	}

	regionsJSON, err := json.Marshal(filter.Regions)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("failed to encode regions: %w", err)
	}

	segment := domain.Segment{
		AgeMin:              filter.AgeMin,
		AgeMax:              filter.AgeMax,
		Gender:              filter.Gender,
		Regions:             regionsJSON,
		MembershipLevel:     filter.MembershipLevel,
		RecencyMaxDays:      filter.RecencyMaxDays,
		TargetCustomerCount: count,
	}

	if err := s.segmentRepo.Create(ctx, &segment); err != nil {
		logger.Error("failed to create segment", err)
		return domain.Segment{}, err
	}

	logger.Info("new segment created", "segmentId", segment.ID, "customerCount", count)

	return segment, nil
}

func (s *segmentService) GetSegment(ctx context.Context, id uint64) (domain.Segment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Segment{}, fmt.Errorf("context error: %w", err)
	}

	return s.segmentRepo.FindByID(ctx, id)
}

func (s *segmentService) GetAllSegments(ctx context.Context) ([]domain.Segment, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	segments, err := s.segmentRepo.FindAll(ctx)
	if err != nil {
		logger.Error("failed to list segments", err)
		return nil, err
	}

	return segments, nil
}

// RefreshCustomerCount recounts the customers matching a stored segment and
// persists the new figure.
func (s *segmentService) RefreshCustomerCount(ctx context.Context, id uint64) (domain.Segment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Segment{}, fmt.Errorf("context error: %w", err)
	}

	segment, err := s.segmentRepo.FindByID(ctx, id)
	if err != nil {
		return domain.Segment{}, err
	}

	regions, err := decodeRegions(segment.Regions)
	if err != nil {
		return domain.Segment{}, fmt.Errorf("failed to decode segment regions: %w", err)
	}

	filter := domain.SegmentFilter{
		AgeMin:          segment.AgeMin,
		AgeMax:          segment.AgeMax,
		Gender:          segment.Gender,
		Regions:         regions,
		MembershipLevel: segment.MembershipLevel,
		RecencyMaxDays:  segment.RecencyMaxDays,
	}

	count, err := s.customerRepo.CountBySegmentFilter(ctx, filter)
	if err != nil {
		logger.Error("failed to recount segment customers", err)
		return domain.Segment{}, err
	}

	if err := s.segmentRepo.UpdateCustomerCount(ctx, id, count); err != nil {
		logger.Error("failed to update segment customer count", err)
		return domain.Segment{}, err
	}

	segment.TargetCustomerCount = count

	return segment, nil
}

func decodeRegions(raw []byte) ([]domain.Region, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var regions []domain.Region
	if err := json.Unmarshal(raw, &regions); err != nil {
		return nil, err
	}

	return regions, nil
}
