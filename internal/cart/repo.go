package cart

import (
	"context"
	"errors"

	"github.com/angelmondragon/scancart-backend/pkg/db"
	"github.com/angelmondragon/scancart-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists carts and their items.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindCartByUser loads the cart owned by userID.
func (r *Repository) FindCartByUser(ctx context.Context, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := r.db.WithContext(ctx).
		Where(map[string]any{"Userid": userID}).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// EnsureCart returns the user's cart, creating it on first use. A concurrent
// creator losing the unique race re-reads the winner's row.
func (r *Repository) EnsureCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := r.FindCartByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = &models.Cart{UserID: userID}
	if err := r.db.WithContext(ctx).Create(cart).Error; err != nil {
		if db.IsUniqueViolation(err) {
			return r.FindCartByUser(ctx, userID)
		}
		return nil, err
	}
	return cart, nil
}

// ListItems returns the cart's items in insertion order.
func (r *Repository) ListItems(ctx context.Context, cartID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where(map[string]any{"Cart_id": cartID}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}}).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// InsertItem adds a new line; a duplicate (cart, product) pair fails.
func (r *Repository) InsertItem(ctx context.Context, item *models.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// UpsertItemQuantity writes quantity for (cartID, productID), inserting the
// line when missing. MySQL renders this as ON DUPLICATE KEY UPDATE.
func (r *Repository) UpsertItemQuantity(ctx context.Context, cartID int64, productID string, quantity int) error {
	item := &models.CartItem{CartID: cartID, ProductID: productID, Quantity: quantity}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "Cart_id"}, {Name: "Product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"Quantity"}),
		}).
		Create(item).Error
}

// DeleteItem removes the line and reports how many rows went away.
func (r *Repository) DeleteItem(ctx context.Context, cartID int64, productID string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where(map[string]any{"Cart_id": cartID, "Product_id": productID}).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
