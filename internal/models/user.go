package models

import (
	"time"
)

type User struct {
	ID           string    `json:"id" gorm:"primaryKey;size:60"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:180"`
	Name         string    `json:"name" gorm:"size:120"`
	PasswordHash string    `json:"-" gorm:"size:120"`
	Role         string    `json:"role" gorm:"size:20"` // "client" ou "merchant"
	StoreID      *string   `json:"store_id,omitempty" gorm:"size:60"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsMerchant indique si l'utilisateur gère un magasin (dashboard propriétaire).
func (u *User) IsMerchant() bool {
	return u.Role == "merchant" && u.StoreID != nil
}
