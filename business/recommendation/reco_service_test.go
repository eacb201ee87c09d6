package recommendation

import (
	"context"
	"testing"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
)

type fakeCustomerRepo struct {
	customer domain.Customer
	err      error
}

func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uint64) (domain.Customer, error) {
	return f.customer, f.err
}

type fakeProductRepo struct {
	available []domain.Product
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id uint64) (domain.Product, error) {
	for _, p := range f.available {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, apperror.New(apperror.CodeProductNotFound, "product not found")
}

func (f *fakeProductRepo) FindAvailable(ctx context.Context) ([]domain.Product, error) {
	return f.available, nil
}

type fakeCampaignRepo struct {
	active []domain.Campaign
}

func (f *fakeCampaignRepo) FindByID(ctx context.Context, id uint64) (domain.Campaign, error) {
	for _, c := range f.active {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Campaign{}, apperror.New(apperror.CodeCampaignNotFound, "campaign not found")
}

func (f *fakeCampaignRepo) FindActive(ctx context.Context) ([]domain.Campaign, error) {
	return f.active, nil
}

type fakeProvider struct {
	content   string
	err       error
	gotSystem string
	gotPrompt string
}

func (f *fakeProvider) Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error) {
	f.gotSystem = systemPrompt
	f.gotPrompt = userPrompt
	return f.content, f.err
}

func (f *fakeProvider) Model() string { return "gpt-4o-mini" }

func newTestService(customers *fakeCustomerRepo, products *fakeProductRepo, campaigns *fakeCampaignRepo, provider *fakeProvider) *recommendationService {
	return NewRecommendationService(customers, products, campaigns, provider, 0.7, 1500)
}

func TestRecommendProductsHappyPath(t *testing.T) {
	customers := &fakeCustomerRepo{customer: domain.Customer{ID: 1, Age: intPtr(30)}}
	products := &fakeProductRepo{available: eligiblePool()}
	campaigns := &fakeCampaignRepo{}
	provider := &fakeProvider{
		content: `[
			{"rank":1,"productId":2,"reason":"r1","expectedBenefit":"b1","relevanceScore":95},
			{"rank":2,"productId":1,"reason":"r2","expectedBenefit":"b2","relevanceScore":91},
			{"rank":3,"productId":3,"reason":"r3","expectedBenefit":"b3","relevanceScore":87}
		]`,
	}

	svc := newTestService(customers, products, campaigns, provider)

	result, err := svc.RecommendProducts(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Recommendations) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(result.Recommendations))
	}
	if result.Recommendations[0].Product.ID != 2 {
		t.Errorf("rank 1 product = %d, want 2", result.Recommendations[0].Product.ID)
	}
	if result.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", result.Model)
	}
	if provider.gotSystem != productSystemPrompt {
		t.Errorf("provider got system prompt %q", provider.gotSystem)
	}
}

func TestRecommendProductsNoEligibleItems(t *testing.T) {
	customers := &fakeCustomerRepo{customer: domain.Customer{ID: 1, Age: intPtr(45)}}
	products := &fakeProductRepo{available: []domain.Product{
		{ID: 1, Name: "청년 요금제 만 18~29세"},
	}}

	svc := newTestService(customers, products, &fakeCampaignRepo{}, &fakeProvider{})

	_, err := svc.RecommendProducts(context.Background(), 1, 0)
	if !apperror.Is(err, apperror.CodeNoEligibleItems) {
		t.Fatalf("expected NO_ELIGIBLE_ITEMS, got %v", err)
	}
}

func TestRecommendProductsMalformedProviderResponse(t *testing.T) {
	customers := &fakeCustomerRepo{customer: domain.Customer{ID: 1}}
	products := &fakeProductRepo{available: eligiblePool()}
	provider := &fakeProvider{content: "죄송하지만 추천을 드릴 수 없습니다."}

	svc := newTestService(customers, products, &fakeCampaignRepo{}, provider)

	_, err := svc.RecommendProducts(context.Background(), 1, 0)
	if !apperror.Is(err, apperror.CodeMalformedResponse) {
		t.Fatalf("expected MALFORMED_RESPONSE, got %v", err)
	}
}

func TestRecommendProductsWithTargetCampaign(t *testing.T) {
	customers := &fakeCustomerRepo{customer: domain.Customer{ID: 1}}
	products := &fakeProductRepo{available: eligiblePool()}
	campaigns := &fakeCampaignRepo{active: []domain.Campaign{
		{ID: 10, Name: "5G 전환 캠페인", Type: domain.CampaignUpselling},
	}}
	provider := &fakeProvider{
		content: `[{"rank":1,"productId":1,"reason":"r","expectedBenefit":"b","relevanceScore":90}]`,
	}

	svc := newTestService(customers, products, campaigns, provider)

	result, err := svc.RecommendProducts(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Campaign == nil || result.Campaign.ID != 10 {
		t.Errorf("result campaign = %+v, want id 10", result.Campaign)
	}
}

func TestRecommendCampaignsHappyPath(t *testing.T) {
	customers := &fakeCustomerRepo{customer: domain.Customer{ID: 1}}
	campaigns := &fakeCampaignRepo{active: []domain.Campaign{
		{ID: 10, Name: "5G 전환 캠페인"},
		{ID: 11, Name: "가족 결합 캠페인"},
	}}
	provider := &fakeProvider{
		content: "```json\n[{\"rank\":1,\"campaignId\":11,\"reason\":\"r\",\"expectedBenefit\":\"b\",\"relevanceScore\":93}]\n```",
	}

	svc := newTestService(customers, &fakeProductRepo{}, campaigns, provider)

	result, err := svc.RecommendCampaigns(context.Background(), 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Recommendations) != 1 || result.Recommendations[0].Campaign.ID != 11 {
		t.Fatalf("unexpected recommendations: %+v", result.Recommendations)
	}
	if provider.gotSystem != campaignSystemPrompt {
		t.Errorf("provider got system prompt %q", provider.gotSystem)
	}
}

func TestRecommendCampaignsNoActive(t *testing.T) {
	customers := &fakeCustomerRepo{customer: domain.Customer{ID: 1}}

	svc := newTestService(customers, &fakeProductRepo{}, &fakeCampaignRepo{}, &fakeProvider{})

	_, err := svc.RecommendCampaigns(context.Background(), 1, 0)
	if !apperror.Is(err, apperror.CodeNoEligibleItems) {
		t.Fatalf("expected NO_ELIGIBLE_ITEMS, got %v", err)
	}
}
