package models

import (
	"time"
)

// InventoryRecord relie un produit à un magasin : ce produit est (ou était)
// en rayon à ce prix. ProductName est dénormalisé car certains stocks saisis
// à la main n'ont pas de SKU catalogue.
type InventoryRecord struct {
	ID            string    `json:"id" gorm:"primaryKey;size:60"`
	StoreID       string    `json:"store_id" gorm:"size:60;index"`
	RetailerKey   string    `json:"retailer" gorm:"size:40"`
	SKU           string    `json:"sku" gorm:"size:60;index"`
	ProductName   string    `json:"product_name" gorm:"size:180"`
	Price         float64   `json:"price" gorm:"type:decimal(12,2)"`
	Quantity      int       `json:"quantity"`
	InStock       bool      `json:"in_stock"`
	StockOverride bool      `json:"stock_override" gorm:"default:false"`
	Category      string    `json:"category" gorm:"size:80"`
	UpdatedAt     time.Time `json:"last_updated"`
}

// NormalizeStock recalcule in_stock à partir de la quantité, sauf si un
// override explicite a été posé. À appeler à l'ingestion, jamais dans le
// moteur de recherche.
func (r *InventoryRecord) NormalizeStock() {
	if r.StockOverride {
		return
	}
	r.InStock = r.Quantity > 0
}
