package models

import "github.com/angelmondragon/scancart-backend/pkg/types"

// Product is a scannable catalog row keyed by its barcode value.
type Product struct {
	ProductID   string      `gorm:"column:Product_id;type:varchar(64);primaryKey" json:"Product_id"`
	ProductName string      `gorm:"column:Product_name;type:varchar(255);not null" json:"Product_name"`
	Price       types.Money `gorm:"column:Price;type:decimal(10,2);not null" json:"Price"`
	Discount    types.Money `gorm:"column:Discount;type:decimal(10,2);not null;default:0" json:"Discount"`
	Category    string      `gorm:"column:Category;type:varchar(128)" json:"Category,omitempty"`
}

func (Product) TableName() string { return "Product3" }
