package segment

import (
	"context"
	"encoding/json"
	"testing"

	"aiMarketingMsg/domain"
)

type fakeSegmentRepo struct {
	segments []domain.Segment
	created  []domain.Segment
	counts   map[uint64]int64
}

func (f *fakeSegmentRepo) Create(ctx context.Context, segment *domain.Segment) error {
	segment.ID = uint64(len(f.segments) + len(f.created) + 1)
	f.created = append(f.created, *segment)
	return nil
}

func (f *fakeSegmentRepo) FindByID(ctx context.Context, id uint64) (domain.Segment, error) {
	for _, s := range f.segments {
		if s.ID == id {
			return s, nil
		}
	}
	for _, s := range f.created {
		if s.ID == id {
			return s, nil
		}
	}
	return domain.Segment{}, context.Canceled
}

func (f *fakeSegmentRepo) FindAll(ctx context.Context) ([]domain.Segment, error) {
	return f.segments, nil
}

func (f *fakeSegmentRepo) FindByScalarFilters(ctx context.Context, filter domain.SegmentFilter) ([]domain.Segment, error) {
	return f.segments, nil
}

func (f *fakeSegmentRepo) UpdateCustomerCount(ctx context.Context, id uint64, count int64) error {
	if f.counts == nil {
		f.counts = make(map[uint64]int64)
	}
	f.counts[id] = count
	return nil
}

type fakeCustomerRepo struct {
	count int64
}

func (f *fakeCustomerRepo) CountBySegmentFilter(ctx context.Context, filter domain.SegmentFilter) (int64, error) {
	return f.count, nil
}

func mustRegions(t *testing.T, regions []domain.Region) []byte {
	t.Helper()
	raw, err := json.Marshal(regions)
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func TestFindOrCreateMatchesRegionSet(t *testing.T) {
	existing := domain.Segment{
		ID:                  1,
		Regions:             mustRegions(t, []domain.Region{domain.RegionSeoul, domain.RegionBusan}),
		TargetCustomerCount: 900,
	}
	segRepo := &fakeSegmentRepo{segments: []domain.Segment{existing}}
	svc := NewSegmentService(segRepo, &fakeCustomerRepo{count: 900})

	// same regions in a different order must match the stored segment
	got, err := svc.FindOrCreate(context.Background(), domain.SegmentFilter{
		Regions: []domain.Region{domain.RegionBusan, domain.RegionSeoul},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.ID != 1 {
		t.Errorf("got segment %d, want existing segment 1", got.ID)
	}
	if len(segRepo.created) != 0 {
		t.Errorf("no segment should have been created, got %d", len(segRepo.created))
	}
}

func TestFindOrCreateCreatesWhenRegionsDiffer(t *testing.T) {
	existing := domain.Segment{
		ID:      1,
		Regions: mustRegions(t, []domain.Region{domain.RegionSeoul}),
	}
	segRepo := &fakeSegmentRepo{segments: []domain.Segment{existing}}
	svc := NewSegmentService(segRepo, &fakeCustomerRepo{count: 350})

	got, err := svc.FindOrCreate(context.Background(), domain.SegmentFilter{
		Regions: []domain.Region{domain.RegionJeju},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(segRepo.created) != 1 {
		t.Fatalf("expected one created segment, got %d", len(segRepo.created))
	}
	if got.TargetCustomerCount != 350 {
		t.Errorf("new segment customer count = %d, want 350", got.TargetCustomerCount)
	}

	var regions []domain.Region
	if err := json.Unmarshal(got.Regions, &regions); err != nil {
		t.Fatalf("created segment regions are not valid JSON: %v", err)
	}
	if len(regions) != 1 || regions[0] != domain.RegionJeju {
		t.Errorf("created segment regions = %v", regions)
	}
}

func TestFindOrCreateNoRegions(t *testing.T) {
	existing := domain.Segment{ID: 1}
	segRepo := &fakeSegmentRepo{segments: []domain.Segment{existing}}
	svc := NewSegmentService(segRepo, &fakeCustomerRepo{})

	got, err := svc.FindOrCreate(context.Background(), domain.SegmentFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != 1 {
		t.Errorf("empty region sets should match, got segment %d", got.ID)
	}
}

func TestRefreshCustomerCount(t *testing.T) {
	existing := domain.Segment{
		ID:                  1,
		Regions:             mustRegions(t, []domain.Region{domain.RegionSeoul}),
		TargetCustomerCount: 100,
	}
	segRepo := &fakeSegmentRepo{segments: []domain.Segment{existing}}
	svc := NewSegmentService(segRepo, &fakeCustomerRepo{count: 275})

	got, err := svc.RefreshCustomerCount(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.TargetCustomerCount != 275 {
		t.Errorf("refreshed count = %d, want 275", got.TargetCustomerCount)
	}
	if segRepo.counts[1] != 275 {
		t.Errorf("stored count = %d, want 275", segRepo.counts[1])
	}
}
