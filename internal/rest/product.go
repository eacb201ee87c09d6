package rest

import (
	"context"
	"net/http"
	"time"

	"aiMarketingMsg/business/product"
	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type ProductService interface {
	CreateProduct(ctx context.Context, req product.CreateProductRequest) (domain.Product, error)
	GetProductByID(ctx context.Context, id uint64) (domain.Product, error)
	GetProducts(ctx context.Context, category string) ([]domain.Product, error)
	GetAvailableProducts(ctx context.Context) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, id uint64, req product.UpdateProductRequest) (domain.Product, error)
	DeleteProduct(ctx context.Context, id uint64) error
}

type ProductHandler struct {
	productService ProductService
	validate       *validator.Validate
	timeout        time.Duration
}

func NewProductHandler(productService ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		validate:       validator.New(),
		timeout:        10 * time.Second,
	}
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req product.CreateProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("invalid request body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	created, err := h.productService.CreateProduct(ctx, req)
	if err != nil {
		logger.Error("failed to create product", err)
		return err
	}

	return c.JSON(http.StatusCreated, fres.Response.StatusCreated(created))
}

func (h *ProductHandler) GetProductByID(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	found, err := h.productService.GetProductByID(ctx, id)
	if err != nil {
		logger.Error("failed to get product", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(found))
}

// GetAllProducts lists plans, optionally filtered by category or narrowed to
// the ones still recommendable with ?available=true.
func (h *ProductHandler) GetAllProducts(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if c.QueryParam("available") == "true" {
		products, err := h.productService.GetAvailableProducts(ctx)
		if err != nil {
			logger.Error("failed to list available products", err)
			return err
		}
		return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
	}

	products, err := h.productService.GetProducts(ctx, c.QueryParam("category"))
	if err != nil {
		logger.Error("failed to list products", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(products))
}

func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req product.UpdateProductRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("invalid request body", err)
		return apperror.Wrap(apperror.CodeValidation, "invalid request body", err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	updated, err := h.productService.UpdateProduct(ctx, id, req)
	if err != nil {
		logger.Error("failed to update product", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(updated))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	if err := h.productService.DeleteProduct(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return err
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK("product deleted"))
}
