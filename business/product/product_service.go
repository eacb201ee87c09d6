package product

import (
	"context"
	"fmt"

	"aiMarketingMsg/domain"
	"aiMarketingMsg/pkg/apperror"
	"aiMarketingMsg/pkg/logger"

	"github.com/go-playground/validator/v10"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id uint64) (domain.Product, error)
	FindAll(ctx context.Context, category string) ([]domain.Product, error)
	FindAvailable(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id uint64) error
}

// CreateProductRequest carries the fields a marketer can set on a new plan.
type CreateProductRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Category     string  `json:"category" validate:"required,max=100"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	DiscountRate float64 `json:"discountRate" validate:"gte=0,lte=100"`
	Benefits     string  `json:"benefits"`
	StockStatus  string  `json:"stockStatus" validate:"omitempty,oneof=AVAILABLE LOW_STOCK OUT_OF_STOCK"`
}

// UpdateProductRequest mirrors the create payload for full replacement.
type UpdateProductRequest struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Category     string  `json:"category" validate:"required,max=100"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	DiscountRate float64 `json:"discountRate" validate:"gte=0,lte=100"`
	Benefits     string  `json:"benefits"`
	StockStatus  string  `json:"stockStatus" validate:"required,oneof=AVAILABLE LOW_STOCK OUT_OF_STOCK"`
}

type productService struct {
	productRepo ProductRepository
	validate    *validator.Validate
}

func NewProductService(productRepo ProductRepository, validate *validator.Validate) *productService {
	return &productService{
		productRepo: productRepo,
		validate:    validate,
	}
}

func (s *productService) CreateProduct(ctx context.Context, req CreateProductRequest) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when creating product")
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(req); err != nil {
		logger.Error("invalid create product request", err)
		return domain.Product{}, apperror.Wrap(apperror.CodeValidation, "invalid product payload", err)
	}

	status := domain.StockStatus(req.StockStatus)
	if status == "" {
		status = domain.StockAvailable
	}

	product := domain.Product{
		Name:         req.Name,
		Category:     req.Category,
		Price:        req.Price,
		DiscountRate: req.DiscountRate,
		Benefits:     req.Benefits,
		StockStatus:  status,
	}

	if err := s.productRepo.Create(ctx, &product); err != nil {
		logger.Error("failed to create product", err)
		return domain.Product{}, err
	}

	logger.Info("product created", "productId", product.ID, "name", product.Name)

	return product, nil
}

func (s *productService) GetProductByID(ctx context.Context, id uint64) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get product by id")
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product", err)
		return domain.Product{}, err
	}

	return product, nil
}

// GetProducts lists every plan, optionally narrowed to one category.
func (s *productService) GetProducts(ctx context.Context, category string) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx, category)
	if err != nil {
		logger.Error("failed to list products", err)
		return nil, err
	}

	return products, nil
}

// GetAvailableProducts lists the plans that can still be recommended,
// meaning everything not marked out of stock.
func (s *productService) GetAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when listing available products")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAvailable(ctx)
	if err != nil {
		logger.Error("failed to list available products", err)
		return nil, err
	}

	return products, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id uint64, req UpdateProductRequest) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when updating product")
		return domain.Product{}, fmt.Errorf("context error: %w", err)
	}

	if err := s.validate.Struct(req); err != nil {
		logger.Error("invalid update product request", err)
		return domain.Product{}, apperror.Wrap(apperror.CodeValidation, "invalid product payload", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("product not found for update", err)
		return domain.Product{}, err
	}

	product.Name = req.Name
	product.Category = req.Category
	product.Price = req.Price
	product.DiscountRate = req.DiscountRate
	product.Benefits = req.Benefits
	product.StockStatus = domain.StockStatus(req.StockStatus)

	if err := s.productRepo.Update(ctx, &product); err != nil {
		logger.Error("failed to update product", err)
		return domain.Product{}, err
	}

	return product, nil
}

// DeleteProduct removes a catalog item. Products still in stock stay in the
// catalog, they must be marked OUT_OF_STOCK first.
func (s *productService) DeleteProduct(ctx context.Context, id uint64) error {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when deleting product")
		return fmt.Errorf("context error: %w", err)
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("product not found for delete", err)
		return err
	}

	if product.StockStatus != domain.StockOutOfStock {
		return apperror.New(apperror.CodeProductNotDeletable, "only out of stock products can be deleted").
			WithDetail("productId", id).
			WithDetail("stockStatus", string(product.StockStatus))
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		logger.Error("failed to delete product", err)
		return err
	}

	logger.Info("product deleted", "productId", id)

	return nil
}
