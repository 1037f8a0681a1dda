package models

import (
	"time"
)

type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;size:60"`
	UserID    string    `json:"user_id" gorm:"size:60;index"`
	Type      string    `json:"type" gorm:"size:30"` // "order_placed", "order_cancelled", "price_drop"
	Message   string    `json:"message" gorm:"size:300"`
	Read      bool      `json:"read" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
}
