package services

import (
	"context"
	"errors"

	apperrors "storefront/errors"
	"storefront/models"
	"storefront/repository"

	"gorm.io/gorm"
)

// ProductInput is the admin-facing shape for creating or editing a
// product.
type ProductInput struct {
	Name     string  `json:"name" form:"name" binding:"required"`
	Price    float64 `json:"price" form:"price"`
	Category string  `json:"category" form:"category" binding:"required"`
	Stock    int     `json:"stock" form:"stock"`
}

// ProductService owns catalog reads and the admin catalog mutations.
type ProductService struct {
	products repository.ProductRepository
}

func NewProductService(products repository.ProductRepository) *ProductService {
	return &ProductService{products: products}
}

func (s *ProductService) ListProducts(ctx context.Context) ([]models.Product, *apperrors.Error) {
	products, err := s.products.FindAll(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return products, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, *apperrors.Error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProductNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return product, nil
}

// CreateProduct inserts a new product row. Duplicate names are allowed:
// two rows with the same name are distinct products.
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, *apperrors.Error) {
	if appErr := validateProductInput(input); appErr != nil {
		return nil, appErr
	}

	product := &models.Product{
		Name:     input.Name,
		Price:    input.Price,
		Category: input.Category,
		Stock:    input.Stock,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return product, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint, input ProductInput) (*models.Product, *apperrors.Error) {
	if appErr := validateProductInput(input); appErr != nil {
		return nil, appErr
	}

	product, appErr := s.GetProduct(ctx, id)
	if appErr != nil {
		return nil, appErr
	}

	product.Name = input.Name
	product.Price = input.Price
	product.Category = input.Category
	product.Stock = input.Stock

	if err := s.products.Update(ctx, product); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return product, nil
}

// DeleteProduct removes the product from the catalog. Orders that
// reference it keep their frozen line items.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) *apperrors.Error {
	if err := s.products.Delete(ctx, id); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func validateProductInput(input ProductInput) *apperrors.Error {
	if input.Name == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "Product name is required.")
	}
	if input.Category == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "Product category is required.")
	}
	if input.Price < 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, "Price must not be negative.")
	}
	if input.Stock < 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, "Stock must not be negative.")
	}
	return nil
}
