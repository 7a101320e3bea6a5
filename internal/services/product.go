package services

import (
	"context"
	"strings"
	"time"

	"github.com/Renal37/delux-perfumes/internal/logger"
	"github.com/Renal37/delux-perfumes/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService управляет каталогом товаров
type ProductService struct {
	storage productStorage
	now     func() time.Time
}

type productStorage interface {
	InsertProduct(ctx context.Context, product models.Product) error
	FindProduct(ctx context.Context, productID string) (*models.Product, error)
	FindProducts(ctx context.Context) ([]models.Product, error)
	ReplaceProduct(ctx context.Context, product models.Product) (bool, error)
	RemoveProduct(ctx context.Context, productID string) (bool, error)
}

func NewProductService(storage productStorage) *ProductService {
	return &ProductService{storage: storage, now: time.Now}
}

// CreateProduct создает товар. Категория по умолчанию Uncategorized.
func (p *ProductService) CreateProduct(ctx context.Context, input models.ProductInput) (*models.Product, error) {
	product := models.Product{Category: models.CategoryUncategorized}
	if err := applyProductInput(&product, input, true); err != nil {
		return nil, err
	}

	now := p.now().UTC().Truncate(time.Microsecond)
	product.ID = uuid.NewString()
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := p.storage.InsertProduct(ctx, product); err != nil {
		return nil, wrapStorageError("create product", err)
	}

	logger.Log.Info("product created", zap.String("productID", product.ID), zap.String("name", product.Name))

	return &product, nil
}

// ListProducts возвращает все товары, новые первыми
func (p *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := p.storage.FindProducts(ctx)
	if err != nil {
		return nil, wrapStorageError("list products", err)
	}

	if products == nil {
		return []models.Product{}, nil
	}

	return products, nil
}

func (p *ProductService) GetProduct(ctx context.Context, productID string) (*models.Product, error) {
	if _, err := uuid.Parse(productID); err != nil {
		return nil, &NotFoundError{Entity: "Product", ID: productID}
	}

	product, err := p.storage.FindProduct(ctx, productID)
	if err != nil {
		return nil, wrapStorageError("find product", err)
	}

	if product == nil {
		return nil, &NotFoundError{Entity: "Product", ID: productID}
	}

	return product, nil
}

// UpdateProduct изменяет переданные поля товара
func (p *ProductService) UpdateProduct(ctx context.Context, productID string, input models.ProductInput) (*models.Product, error) {
	product, err := p.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := applyProductInput(product, input, false); err != nil {
		return nil, err
	}
	product.UpdatedAt = p.now().UTC().Truncate(time.Microsecond)

	found, err := p.storage.ReplaceProduct(ctx, *product)
	if err != nil {
		return nil, wrapStorageError("update product", err)
	}

	if !found {
		return nil, &NotFoundError{Entity: "Product", ID: productID}
	}

	return product, nil
}

func (p *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	if _, err := uuid.Parse(productID); err != nil {
		return &NotFoundError{Entity: "Product", ID: productID}
	}

	found, err := p.storage.RemoveProduct(ctx, productID)
	if err != nil {
		return wrapStorageError("delete product", err)
	}

	if !found {
		return &NotFoundError{Entity: "Product", ID: productID}
	}

	return nil
}

// applyProductInput переносит поля запроса в товар и проверяет результат.
// При создании имя и цена обязательны.
func applyProductInput(product *models.Product, input models.ProductInput, create bool) error {
	if input.Name != nil {
		product.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		product.Category = models.ProductCategory(*input.Category)
	}

	if product.Name == "" {
		return newValidationError("Product name is required")
	}
	if create && input.Price == nil {
		return newValidationError("Price is required")
	}
	if product.Price < 0 {
		return newValidationError("Price cannot be negative")
	}
	if !product.Category.IsValid() {
		names := make([]string, len(models.ProductCategories))
		for i, category := range models.ProductCategories {
			names[i] = string(category)
		}
		return newValidationError("Invalid category. Must be one of: %s", strings.Join(names, ", "))
	}

	return nil
}
