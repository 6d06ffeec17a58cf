package cart

import (
	"context"

	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	"gorm.io/gorm"
)

// CartRepository defines the persistence surface required by the cart service.
type CartRepository interface {
	WithTx(tx *gorm.DB) CartRepository
	FindCartByUser(ctx context.Context, userID string) (*models.Cart, error)
	EnsureCart(ctx context.Context, userID string) (*models.Cart, error)
	ListItems(ctx context.Context, cartID int64) ([]models.CartItem, error)
	InsertItem(ctx context.Context, item *models.CartItem) error
	UpsertItemQuantity(ctx context.Context, cartID int64, productID string, quantity int) error
	DeleteItem(ctx context.Context, cartID int64, productID string) (int64, error)
}

type productLoader interface {
	FindByID(ctx context.Context, productID string) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []string) (map[string]models.Product, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}
