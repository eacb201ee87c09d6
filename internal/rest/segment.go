package rest

import (
	"context"
	"net/http"
	"time"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type SegmentService interface {
	FindOrCreate(ctx context.Context, filter domain.SegmentFilter) (domain.Segment, error)
	GetSegment(ctx context.Context, id uint64) (domain.Segment, error)
	GetAllSegments(ctx context.Context) ([]domain.Segment, error)
	RefreshCustomerCount(ctx context.Context, id uint64) (domain.Segment, error)
}

type SegmentHandler struct {
	segmentService SegmentService
	validate       *validator.Validate
	timeout        time.Duration
}

func NewSegmentHandler(segmentService SegmentService) *SegmentHandler {
	return &SegmentHandler{
		segmentService: segmentService,
		validate:       validator.New(),
		timeout:        10 * time.Second,
	}
}

// ResolveSegment returns the segment matching the posted filter, creating it
// when no equivalent one exists yet.
func (h *SegmentHandler) ResolveSegment(c echo.Context) error {
	var filter domain.SegmentFilter
	if err := c.Bind(&filter); err != nil {
		logger.Error("invalid segment filter body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	if err := h.validate.Struct(&filter); err != nil {
		logger.Error("failed to validate segment filter", err)
		return apperror.Wrap(apperror.CodeValidation, err.Error(), err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	segment, err := h.segmentService.FindOrCreate(ctx, filter)
	if err != nil {
		logger.Error("failed to resolve segment", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(segment))
}

func (h *SegmentHandler) GetSegmentByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	segment, err := h.segmentService.GetSegment(ctx, id)
	if err != nil {
		logger.Error("failed to get segment", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(segment))
}

func (h *SegmentHandler) GetAllSegments(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	segments, err := h.segmentService.GetAllSegments(ctx)
	if err != nil {
		logger.Error("failed to list segments", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(segments))
}

// RefreshCustomerCount recounts the customers a stored segment reaches and
// returns the updated segment.
func (h *SegmentHandler) RefreshCustomerCount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	segment, err := h.segmentService.RefreshCustomerCount(ctx, id)
	if err != nil {
		logger.Error("failed to refresh segment customer count", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(segment))
}
