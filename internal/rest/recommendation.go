package rest

import (
	"context"
	"net/http"
	"time"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"
)

type RecommendationService interface {
	RecommendProducts(ctx context.Context, customerID, campaignID uint64) (*domain.ProductRecommendationResult, error)
	RecommendCampaigns(ctx context.Context, customerID, productID uint64) (*domain.CampaignRecommendationResult, error)
}

type RecommendationHandler struct {
	recoService RecommendationService
	timeout     time.Duration
}

func NewRecommendationHandler(recoService RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		recoService: recoService,
		// covers the provider round trip, which can take tens of seconds
		timeout: 60 * time.Second,
	}
}

// RecommendProducts returns three validated plan recommendations for a
// customer. An optional ?campaignId= anchors the recommendations to one
// campaign.
func (h *RecommendationHandler) RecommendProducts(c echo.Context) error {
	customerID, err := parseIDParam(c, "customerId")
	if err != nil {
		return err
	}

	campaignID, err := parseQueryUint(c, "campaignId")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recoService.RecommendProducts(ctx, customerID, campaignID)
	if err != nil {
		logger.Error("failed to recommend products", "customerId", customerID, err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// RecommendCampaigns returns three validated campaign recommendations for a
// customer. An optional ?productId= anchors them to one plan.
func (h *RecommendationHandler) RecommendCampaigns(c echo.Context) error {
	customerID, err := parseIDParam(c, "customerId")
	if err != nil {
		return err
	}

	productID, err := parseQueryUint(c, "productId")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	result, err := h.recoService.RecommendCampaigns(ctx, customerID, productID)
	if err != nil {
		logger.Error("failed to recommend campaigns", "customerId", customerID, err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}
