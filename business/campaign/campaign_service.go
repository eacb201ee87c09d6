package campaign

import (
	"context"
	"fmt"
	"time"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// CampaignRepository contract interface
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	FindByID(ctx context.Context, id uint64) (domain.Campaign, error)
	FindAll(ctx context.Context, status domain.CampaignStatus) ([]domain.Campaign, error)
	FindActive(ctx context.Context) ([]domain.Campaign, error)
	Update(ctx context.Context, campaign *domain.Campaign) error
	Delete(ctx context.Context, id uint64) error
}

// CreateCampaignRequest carries the fields set when a marketer registers a
// campaign. New campaigns always start in DRAFT.
type CreateCampaignRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Type        string    `json:"type" validate:"required,oneof=ACQUISITION RETENTION UPSELLING CROSS_SELLING CHURN_PREVENTION"`
	Description string    `json:"description"`
	Benefit     string    `json:"benefit"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required"`
}

// UpdateCampaignRequest mirrors the create payload plus a status transition.
type UpdateCampaignRequest struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Type        string    `json:"type" validate:"required,oneof=ACQUISITION RETENTION UPSELLING CROSS_SELLING CHURN_PREVENTION"`
	Description string    `json:"description"`
	Benefit     string    `json:"benefit"`
	StartDate   time.Time `json:"startDate" validate:"required"`
	EndDate     time.Time `json:"endDate" validate:"required"`
	Status      string    `json:"status" validate:"required,oneof=DRAFT ACTIVE COMPLETED CANCELLED"`
}

type campaignService struct {
	campaignRepo CampaignRepository
	validate     *validator.Validate
}

func NewCampaignService(campaignRepo CampaignRepository, validate *validator.Validate) *campaignService {
	return &campaignService{
		campaignRepo: campaignRepo,
		validate:     validate,
	}
}

func (s *campaignService) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating campaign")
		return domain.Campaign{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(req); err != nil {
		logger.Error("invalid create campaign request", err)
		return domain.Campaign{}, apperror.Wrap(apperror.CodeValidation, "invalid campaign payload", err)
	}

	campaign := domain.Campaign{
		Name:        req.Name,
		Type:        domain.CampaignType(req.Type),
		Description: req.Description,
		Benefit:     req.Benefit,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domain.CampaignDraft,
	}

	if !campaign.HasValidDateRange() {
		logger.Error("campaign start date is after end date")
		return domain.Campaign{}, apperror.New(apperror.CodeInvalidDateRange, "start date must not be after end date")
	}

	if err := s.campaignRepo.Create(ctx, &campaign); err != nil {
		logger.Error("failed to create campaign", err)
		return domain.Campaign{}, err
	}

	logger.Info("campaign created", "campaignId", campaign.ID, "name", campaign.Name)

	return campaign, nil
}

func (s *campaignService) GetCampaignByID(ctx context.Context, id uint64) (domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get campaign by id")
		return domain.Campaign{}, fmt.Errorf("context error: %w", err)
	}

	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find campaign", err)
		return domain.Campaign{}, err
	}

	return campaign, nil
}

// GetCampaigns lists campaigns, optionally narrowed to one status.
func (s *campaignService) GetCampaigns(ctx context.Context, status string) ([]domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing campaigns")
		return nil, fmt.Errorf("context error: %w", err)
	}

	campaigns, err := s.campaignRepo.FindAll(ctx, domain.CampaignStatus(status))
	if err != nil {
		logger.Error("failed to list campaigns", err)
		return nil, err
	}

	return campaigns, nil
}

// GetActiveCampaigns lists campaigns whose status is ACTIVE and whose date
// window covers today.
func (s *campaignService) GetActiveCampaigns(ctx context.Context) ([]domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing active campaigns")
		return nil, fmt.Errorf("context error: %w", err)
	}

	campaigns, err := s.campaignRepo.FindActive(ctx)
	if err != nil {
		logger.Error("failed to list active campaigns", err)
		return nil, err
	}

	return campaigns, nil
}

func (s *campaignService) UpdateCampaign(ctx context.Context, id uint64, req UpdateCampaignRequest) (domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating campaign")
		return domain.Campaign{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(req); err != nil {
		logger.Error("invalid update campaign request", err)
		return domain.Campaign{}, apperror.Wrap(apperror.CodeValidation, "invalid campaign payload", err)
	}

	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("campaign not found for update", err)
		return domain.Campaign{}, err
	}

	campaign.Name = req.Name
	campaign.Type = domain.CampaignType(req.Type)
	campaign.Description = req.Description
	campaign.Benefit = req.Benefit
	campaign.StartDate = req.StartDate
	campaign.EndDate = req.EndDate
	campaign.Status = domain.CampaignStatus(req.Status)

	if !campaign.HasValidDateRange() {
		logger.Error("campaign start date is after end date")
		return domain.Campaign{}, apperror.New(apperror.CodeInvalidDateRange, "start date must not be after end date")
	}

	if err := s.campaignRepo.Update(ctx, &campaign); err != nil {
		logger.Error("failed to update campaign", err)
		return domain.Campaign{}, err
	}

	return campaign, nil
}

// DeleteCampaign removes a campaign. Running campaigns must be completed or
// cancelled before they can be deleted.
func (s *campaignService) DeleteCampaign(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting campaign")
		return fmt.Errorf("context error: %w", err)
	}

	campaign, err := s.campaignRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("campaign not found for delete", err)
		return err
	}

	if !campaign.CanBeDeleted() {
		logger.Error("campaign cannot be deleted", "campaignId", id, "status", string(campaign.Status))
		return apperror.New(apperror.CodeCampaignNotDeletable, "only draft or cancelled campaigns can be deleted").
			WithDetail("campaignId", id).
			WithDetail("status", string(campaign.Status))
	}

	if err := s.campaignRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete campaign", err)
		return err
	}

	logger.Info("campaign deleted", "campaignId", id)

	return nil
}
