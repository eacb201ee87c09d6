package postgres

import (
	"context"
	"errors"
	"fmt"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"

	"gorm.io/gorm"
)

type CampaignRepository struct {
	DB *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{
		DB: db,
	}
}

func (r *CampaignRepository) Create(ctx context.Context, campaign *domain.Campaign) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	if err := r.DB.WithContext(ctx).Create(campaign).Error; err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}

	return nil
}

func (r *CampaignRepository) FindByID(ctx context.Context, id uint64) (domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return domain.Campaign{}, fmt.Errorf("context error: %w", err)
	}

	var campaign domain.Campaign

	err := r.DB.WithContext(ctx).Where("campaign_id = ?", id).First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Campaign{}, apperror.New(apperror.CodeCampaignNotFound, "campaign not found").
				WithDetail("campaignId", id)
		}
		return domain.Campaign{}, fmt.Errorf("failed to find campaign: %w", err)
	}

	return campaign, nil
}

func (r *CampaignRepository) FindAll(ctx context.Context, status domain.CampaignStatus) ([]domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var campaigns []domain.Campaign

	q := r.DB.WithContext(ctx).Order("campaign_id ASC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if err := q.Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to find campaigns: %w", err)
	}

	return campaigns, nil
}

// FindActive returns campaigns with ACTIVE status whose date window contains
// now. These form the candidate pool for campaign recommendations.
func (r *CampaignRepository) FindActive(ctx context.Context) ([]domain.Campaign, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	var campaigns []domain.Campaign

	err := r.DB.WithContext(ctx).
		Where("status = ?", domain.CampaignActive).
		Where("start_date <= NOW() AND end_date >= NOW()").
		Order("campaign_id ASC").
		Find(&campaigns).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find active campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *CampaignRepository) Update(ctx context.Context, campaign *domain.Campaign) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Model(&domain.Campaign{}).
		Where("campaign_id = ?", campaign.ID).
		Updates(map[string]interface{}{
			"name":        campaign.Name,
			"type":        campaign.Type,
			"description": campaign.Description,
			"benefit":     campaign.Benefit,
			"start_date":  campaign.StartDate,
			"end_date":    campaign.EndDate,
			"status":      campaign.Status,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update campaign: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.CodeCampaignNotFound, "campaign not found").
			WithDetail("campaignId", campaign.ID)
	}

	return nil
}

func (r *CampaignRepository) Delete(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	result := r.DB.WithContext(ctx).Where("campaign_id = ?", id).Delete(&domain.Campaign{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete campaign: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.New(apperror.CodeCampaignNotFound, "campaign not found").
			WithDetail("campaignId", id)
	}

	return nil
}
