package models

import (
	"time"
)

// Product est une entrée du catalogue de référence. Chargé au démarrage,
// jamais modifié au moment d'une requête.
type Product struct {
	SKU       string    `json:"sku" gorm:"primaryKey;size:60"`
	Name      string    `json:"name" gorm:"size:180;not null"`
	Category  string    `json:"category" gorm:"size:80;index"`
	Brand     string    `json:"brand,omitempty" gorm:"size:100"`
	BasePrice float64   `json:"base_price" gorm:"type:decimal(12,2)"`
	Keywords  []string  `json:"keywords" gorm:"type:jsonb;serializer:json"`
	Retailers []string  `json:"retailers" gorm:"type:jsonb;serializer:json"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CarriedBy indique si un détaillant peut proposer ce produit.
func (p *Product) CarriedBy(retailerKey string) bool {
	for _, r := range p.Retailers {
		if r == retailerKey {
			return true
		}
	}
	return false
}

// Retailer est une enseigne du registre fixe (clé stable, ex: "walmart").
type Retailer struct {
	Key     string `json:"key" gorm:"primaryKey;size:40"`
	Name    string `json:"name" gorm:"size:120"`
	Website string `json:"website" gorm:"size:200"`
}
