package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/scancart-backend/pkg/db"
	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"github.com/angelmondragon/scancart-backend/pkg/types"
	"gorm.io/gorm"
)

const NotFoundMessage = "Product not found."

// Service exposes catalog lookups and inserts.
type Service interface {
	Get(ctx context.Context, productID string) (*models.Product, error)
	Create(ctx context.Context, input CreateProductInput) (*models.Product, error)
}

type productRepository interface {
	FindByID(ctx context.Context, productID string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	ProductID   string      `json:"Product_id" validate:"required,max=64"`
	ProductName string      `json:"Product_name" validate:"required,max=255"`
	Price       types.Money `json:"Price"`
	Discount    types.Money `json:"Discount"`
	Category    string      `json:"Category,omitempty" validate:"omitempty,max=128"`
}

type service struct {
	repo productRepository
}

// NewService builds a product service backed by repo.
func NewService(repo productRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Get(ctx context.Context, productID string) (*models.Product, error) {
	id := strings.TrimSpace(productID)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Product_id is required.")
	}
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, NotFoundMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return product, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	id := strings.TrimSpace(input.ProductID)
	name := strings.TrimSpace(input.ProductName)
	if id == "" || name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Product_id and Product_name are required.")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Price must not be negative.")
	}
	if input.Discount.IsNegative() || input.Discount.GreaterThan(input.Price.Decimal) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Discount must be between 0 and Price.")
	}

	product := &models.Product{
		ProductID:   id,
		ProductName: name,
		Price:       input.Price,
		Discount:    input.Discount,
		Category:    strings.TrimSpace(input.Category),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "Product already exists.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create product")
	}
	return product, nil
}
