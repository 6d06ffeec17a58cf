package models

import "github.com/angelmondragon/scancart-backend/pkg/types"

// Cart owns the line items for one user.
type Cart struct {
	CartID int64  `gorm:"column:Cart_id;primaryKey;autoIncrement"`
	UserID string `gorm:"column:Userid;type:varchar(64);not null;uniqueIndex:uq_cart2_userid"`
}

func (Cart) TableName() string { return "Cart2" }

// CartItem stores a product quantity inside a cart. The (Cart_id, Product_id)
// pair is unique so quantity writes can upsert.
type CartItem struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CartID    int64  `gorm:"column:Cart_id;not null;uniqueIndex:uq_cart_item_cart_product"`
	ProductID string `gorm:"column:Product_id;type:varchar(64);not null;uniqueIndex:uq_cart_item_cart_product"`
	Quantity  int    `gorm:"column:Quantity;not null"`
}

func (CartItem) TableName() string { return "Cart_Item" }

// CartLine is a cart item joined with its product row.
type CartLine struct {
	ProductID   string      `gorm:"column:Product_id" json:"Product_id"`
	ProductName string      `gorm:"column:Product_name" json:"Product_name"`
	Price       types.Money `gorm:"column:Price" json:"Price"`
	Discount    types.Money `gorm:"column:Discount" json:"Discount"`
	Quantity    int         `gorm:"column:Quantity" json:"Quantity"`
}
