package models

import (
	"time"
)

type Order struct {
	ID          string      `json:"id" gorm:"primaryKey;size:60"`
	UserID      string      `json:"user_id" gorm:"size:60;index"`
	StoreID     string      `json:"store_id" gorm:"size:60;index"`
	Status      string      `json:"status" gorm:"size:30"` // "pending", "confirmed", "ready", "cancelled"
	AmountTotal float64     `json:"amount_total" gorm:"type:decimal(12,2)"`
	Items       []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID          string  `json:"id" gorm:"primaryKey;size:60"`
	OrderID     string  `json:"order_id" gorm:"size:60;index"`
	InventoryID string  `json:"inventory_id" gorm:"size:60"`
	SKU         string  `json:"sku" gorm:"size:60"`
	ProductName string  `json:"product_name" gorm:"size:180"`
	Price       float64 `json:"price" gorm:"type:decimal(12,2)"`
	Quantity    int     `json:"quantity"`
}
