package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/scancart-backend/pkg/db"
	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/scancart-backend/pkg/errors"
	"gorm.io/gorm"
)

const (
	EmptyCartMessage       = "Cart is empty for this user."
	ItemNotFoundMessage    = "Cart item not found."
	ProductNotFoundMessage = "Product not found."
	DuplicateItemMessage   = "Product is already in the cart."
	addItemRequiredMessage = "Product_id, User_id, and Quantity are required."
	updateRequiredMessage  = "Product_id, Userid, and Quantity are required."
)

// Service exposes cart persistence operations.
type Service interface {
	GetCart(ctx context.Context, userID string) ([]models.CartLine, error)
	AddItem(ctx context.Context, input AddItemInput) (int64, error)
	UpdateQuantity(ctx context.Context, input UpdateQuantityInput) error
	RemoveItem(ctx context.Context, userID, productID string) error
}

// AddItemInput is the payload of POST /api/cart-item.
type AddItemInput struct {
	ProductID string `json:"Product_id"`
	UserID    string `json:"User_id"`
	Quantity  int    `json:"Quantity"`
}

// UpdateQuantityInput is the payload of POST /api/cart/update.
type UpdateQuantityInput struct {
	ProductID string `json:"Product_id"`
	UserID    string `json:"Userid"`
	Quantity  int    `json:"Quantity"`
}

type service struct {
	repo     CartRepository
	tx       txRunner
	products productLoader
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo CartRepository, tx txRunner, products productLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{repo: repo, tx: tx, products: products}, nil
}

func (s *service) GetCart(ctx context.Context, userID string) ([]models.CartLine, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Userid is required.")
	}

	cart, err := s.repo.FindCartByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, EmptyCartMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
	}

	items, err := s.repo.ListItems(ctx, cart.CartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list cart items")
	}

	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ProductID)
	}
	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart products")
	}

	lines := make([]models.CartLine, 0, len(items))
	for _, item := range items {
		product, ok := products[item.ProductID]
		if !ok {
			continue
		}
		lines = append(lines, models.CartLine{
			ProductID:   product.ProductID,
			ProductName: product.ProductName,
			Price:       product.Price,
			Discount:    product.Discount,
			Quantity:    item.Quantity,
		})
	}
	if len(lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, EmptyCartMessage)
	}
	return lines, nil
}

func (s *service) AddItem(ctx context.Context, input AddItemInput) (int64, error) {
	productID := strings.TrimSpace(input.ProductID)
	userID := strings.TrimSpace(input.UserID)
	if productID == "" || userID == "" || input.Quantity < 1 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, addItemRequiredMessage)
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return 0, err
	}

	var itemID int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cart, err := repo.EnsureCart(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure cart")
		}
		item := &models.CartItem{CartID: cart.CartID, ProductID: productID, Quantity: input.Quantity}
		if err := repo.InsertItem(ctx, item); err != nil {
			if db.IsUniqueViolation(err) {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, DuplicateItemMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "insert cart item")
		}
		itemID = item.ID
		return nil
	})
	if err != nil {
		return 0, err
	}
	return itemID, nil
}

func (s *service) UpdateQuantity(ctx context.Context, input UpdateQuantityInput) error {
	productID := strings.TrimSpace(input.ProductID)
	userID := strings.TrimSpace(input.UserID)
	if productID == "" || userID == "" || input.Quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, updateRequiredMessage)
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cart, err := repo.EnsureCart(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "ensure cart")
		}
		if err := repo.UpsertItemQuantity(ctx, cart.CartID, productID, input.Quantity); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "upsert cart item")
		}
		return nil
	})
}

func (s *service) RemoveItem(ctx context.Context, userID, productID string) error {
	userID = strings.TrimSpace(userID)
	productID = strings.TrimSpace(productID)
	if userID == "" || productID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "Userid and Product_id are required.")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		cart, err := repo.FindCartByUser(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, ItemNotFoundMessage)
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		deleted, err := repo.DeleteItem(ctx, cart.CartID, productID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete cart item")
		}
		if deleted == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, ItemNotFoundMessage)
		}
		return nil
	})
}

func (s *service) requireProduct(ctx context.Context, productID string) error {
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, ProductNotFoundMessage)
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
	}
	return nil
}
