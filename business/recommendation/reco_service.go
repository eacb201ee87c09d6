package recommendation

import (
	"context"
	"fmt"
	"time"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"
	"aiMarketingMsg/pkg/metrics"
)

// CustomerRepository contract interface
type CustomerRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Customer, error)
}

// ProductRepository contract interface
type ProductRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAvailable(ctx context.Context) ([]domain.Product, error)
}

// CampaignRepository contract interface
type CampaignRepository interface {
	FindByID(ctx context.Context, id uint64) (domain.Campaign, error)
	FindActive(ctx context.Context) ([]domain.Campaign, error)
}

// AIProvider is the completion backend. Its output is untrusted.
type AIProvider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float64, maxTokens int) (string, error)
	Model() string
}

type recommendationService struct {
	customerRepo CustomerRepository
	productRepo  ProductRepository
	campaignRepo CampaignRepository
	provider     AIProvider
	temperature  float64
	maxTokens    int
}

func NewRecommendationService(
	customerRepo CustomerRepository,
	productRepo ProductRepository,
	campaignRepo CampaignRepository,
	provider AIProvider,
	temperature float64,
	maxTokens int,
) *recommendationService {
	return &recommendationService{
		customerRepo: customerRepo,
		productRepo:  productRepo,
		campaignRepo: campaignRepo,
		provider:     provider,
		temperature:  temperature,
		maxTokens:    maxTokens,
	}
}

// RecommendProducts picks up to three catalog products for a customer. When
// campaignID is non-zero the picks are steered toward that campaign's goal.
func (s *recommendationService) RecommendProducts(ctx context.Context, customerID, campaignID uint64) (*domain.ProductRecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when recommending products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	metrics.RecommendationRequests.WithLabelValues("product").Inc()

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		logger.Error("failed to find customer for product recommendation", err)
		return nil, err
	}

	available, err := s.productRepo.FindAvailable(ctx)
	if err != nil {
		logger.Error("failed to load available products", err)
		return nil, err
	}
	if len(available) == 0 {
		return nil, apperror.New(apperror.CodeNoEligibleItems, "no products available for recommendation")
	}

	eligible := FilterProducts(available, customer.Age)
	logger.Info("product eligibility filtering done",
		"customerId", customerID, "available", len(available), "eligible", len(eligible))
	if len(eligible) == 0 {
		return nil, apperror.New(apperror.CodeNoEligibleItems, "no products eligible for this customer").
			WithDetail("customerId", customerID)
	}

	var campaign *domain.Campaign
	if campaignID != 0 {
		c, err := s.campaignRepo.FindByID(ctx, campaignID)
		if err != nil {
			logger.Error("failed to find target campaign", err)
			return nil, err
		}
		campaign = &c
	}

	prompt := buildProductPrompt(&customer, eligible, campaign)

	content, err := s.provider.Complete(ctx, productSystemPrompt, prompt, s.temperature, s.maxTokens)
	if err != nil {
		logger.Error("ai provider call failed for product recommendation", err)
		return nil, err
	}

	candidates, err := parseProductCandidates(content)
	if err != nil {
		return nil, err
	}

	recommendations, err := reconcileProducts(candidates, eligible, customer.Age)
	if err != nil {
		return nil, err
	}

	logger.Info("product recommendation done",
		"customerId", customerID, "recommended", len(recommendations))

	return &domain.ProductRecommendationResult{
		Customer:        domain.SummarizeCustomer(&customer),
		Campaign:        campaign,
		Recommendations: recommendations,
		Model:           s.provider.Model(),
		GeneratedAt:     time.Now(),
	}, nil
}

// RecommendCampaigns picks up to three active campaigns for a customer. When
// productID is non-zero the picks are steered toward selling that product.
func (s *recommendationService) RecommendCampaigns(ctx context.Context, customerID, productID uint64) (*domain.CampaignRecommendationResult, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when recommending campaigns")
		return nil, fmt.Errorf("context error: %w", err)
	}

	metrics.RecommendationRequests.WithLabelValues("campaign").Inc()

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		logger.Error("failed to find customer for campaign recommendation", err)
		return nil, err
	}

	active, err := s.campaignRepo.FindActive(ctx)
	if err != nil {
		logger.Error("failed to load active campaigns", err)
		return nil, err
	}
	if len(active) == 0 {
		return nil, apperror.New(apperror.CodeNoEligibleItems, "no active campaigns to recommend")
	}

	var product *domain.Product
	if productID != 0 {
		p, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			logger.Error("failed to find target product", err)
			return nil, err
		}
		product = &p
	}

	prompt := buildCampaignPrompt(&customer, active, product)

	content, err := s.provider.Complete(ctx, campaignSystemPrompt, prompt, s.temperature, s.maxTokens)
	if err != nil {
		logger.Error("ai provider call failed for campaign recommendation", err)
		return nil, err
	}

	candidates, err := parseCampaignCandidates(content)
	if err != nil {
		return nil, err
	}

	recommendations, err := reconcileCampaigns(candidates, active)
	if err != nil {
		return nil, err
	}

	logger.Info("campaign recommendation done",
		"customerId", customerID, "recommended", len(recommendations))

	return &domain.CampaignRecommendationResult{
		Customer:        domain.SummarizeCustomer(&customer),
		Product:         product,
		Recommendations: recommendations,
		Model:           s.provider.Model(),
		GeneratedAt:     time.Now(),
	}, nil
}
