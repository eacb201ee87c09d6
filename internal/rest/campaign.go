package rest

import (
	"context"
	"net/http"
	"time"

	"aiMarketingMsg/business/campaign"
	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type CampaignService interface {
	CreateCampaign(ctx context.Context, req campaign.CreateCampaignRequest) (domain.Campaign, error)
	GetCampaignByID(ctx context.Context, id uint64) (domain.Campaign, error)
	GetCampaigns(ctx context.Context, status string) ([]domain.Campaign, error)
	GetActiveCampaigns(ctx context.Context) ([]domain.Campaign, error)
	UpdateCampaign(ctx context.Context, id uint64, req campaign.UpdateCampaignRequest) (domain.Campaign, error)
	DeleteCampaign(ctx context.Context, id uint64) error
}

type CampaignHandler struct {
	campaignService CampaignService
	validate        *validator.Validate
	timeout         time.Duration
}

func NewCampaignHandler(campaignService CampaignService) *CampaignHandler {
	return &CampaignHandler{
		campaignService: campaignService,
		validate:        validator.New(),
		timeout:         10 * time.Second,
	}
}

func (h *CampaignHandler) CreateCampaign(c echo.Context) error {
	var req campaign.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("invalid request body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.campaignService.CreateCampaign(ctx, req)
	if err != nil {
		logger.Error("failed to create campaign", err)
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *CampaignHandler) GetCampaignByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.campaignService.GetCampaignByID(ctx, id)
	if err != nil {
		logger.Error("failed to get campaign", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(found))
}

// GetAllCampaigns lists campaigns, optionally filtered by ?status= or
// narrowed to the ones currently running with ?active=true.
func (h *CampaignHandler) GetAllCampaigns(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if c.QueryParam("active") == "true" {
		campaigns, err := h.campaignService.GetActiveCampaigns(ctx)
		if err != nil {
			logger.Error("failed to list active campaigns", err)
			return err
		}
		return c.JSON(http.StatusOK, fres.Response.StatusOK(campaigns))
	}

	campaigns, err := h.campaignService.GetCampaigns(ctx, c.QueryParam("status"))
	if err != nil {
		logger.Error("failed to list campaigns", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(campaigns))
}

func (h *CampaignHandler) UpdateCampaign(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req campaign.UpdateCampaignRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("invalid request body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.campaignService.UpdateCampaign(ctx, id, req)
	if err != nil {
		logger.Error("failed to update campaign", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *CampaignHandler) DeleteCampaign(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.campaignService.DeleteCampaign(ctx, id); err != nil {
		logger.Error("failed to delete campaign", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("campaign deleted"))
}
