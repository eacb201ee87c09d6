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

type CustomerService interface {
	GetCustomerByID(ctx context.Context, id uint64) (domain.Customer, error)
	GetCustomers(ctx context.Context, page, size int) ([]domain.Customer, error)
	SearchCustomers(ctx context.Context, keyword string, page, size int) ([]domain.Customer, error)
	CountBySegmentFilter(ctx context.Context, filter domain.SegmentFilter) (int64, error)
	PreviewSegment(ctx context.Context, filter domain.SegmentFilter, page, size int) ([]domain.Customer, error)
}

type CustomerHandler struct {
	customerService CustomerService
	validate        *validator.Validate
	timeout         time.Duration
}

func NewCustomerHandler(customerService CustomerService) *CustomerHandler {
	return &CustomerHandler{
		customerService: customerService,
		validate:        validator.New(),
		timeout:         10 * time.Second,
	}
}

// CustomerDetail is the customer row plus the derived engagement fields.
type CustomerDetail struct {
	domain.Customer
	TenureYears *int `json:"tenureYears,omitempty"`
	RecencyDays *int `json:"recencyDays,omitempty"`
}

func (h *CustomerHandler) GetCustomerByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customer, err := h.customerService.GetCustomerByID(ctx, id)
	if err != nil {
		logger.Error("failed to get customer", err)
		return err
	}

	detail := CustomerDetail{
		Customer:    customer,
		TenureYears: customer.TenureYears(),
		RecencyDays: customer.RecencyDays(),
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(detail))
}

// GetCustomers lists the customer base, optionally narrowed to customers
// whose name or phone contains ?q=.
func (h *CustomerHandler) GetCustomers(c echo.Context) error {
	page := parseQueryInt(c, "page", 1)
	size := parseQueryInt(c, "size", 20)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	var customers []domain.Customer
	var err error
	if keyword := c.QueryParam("q"); keyword != "" {
		customers, err = h.customerService.SearchCustomers(ctx, keyword, page, size)
	} else {
		customers, err = h.customerService.GetCustomers(ctx, page, size)
	}
	if err != nil {
		logger.Error("failed to list customers", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(customers))
}

// CountSegment reports how many customers a segment filter would reach.
func (h *CustomerHandler) CountSegment(c echo.Context) error {
	var filter domain.SegmentFilter
	if err := c.Bind(&filter); err != nil {
		logger.Error("invalid segment filter body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	count, err := h.customerService.CountBySegmentFilter(ctx, filter)
	if err != nil {
		logger.Error("failed to count segment customers", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(map[string]interface{}{
		"targetCustomerCount": count,
	}))
}

// PreviewSegment lists a page of the customers a segment filter matches.
func (h *CustomerHandler) PreviewSegment(c echo.Context) error {
	var filter domain.SegmentFilter
	if err := c.Bind(&filter); err != nil {
		logger.Error("invalid segment filter body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	page := parseQueryInt(c, "page", 1)
	size := parseQueryInt(c, "size", 20)

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	customers, err := h.customerService.PreviewSegment(ctx, filter, page, size)
	if err != nil {
		logger.Error("failed to preview segment", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(customers))
}
