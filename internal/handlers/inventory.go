package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"proxi_back_end/internal/cache"
	"proxi_back_end/internal/database"
	"proxi_back_end/internal/models"
)

type inventoryInput struct {
	SKU           string  `json:"sku"`
	ProductName   string  `json:"product_name" binding:"required"`
	Price         float64 `json:"price" binding:"min=0"`
	Quantity      int     `json:"quantity" binding:"min=0"`
	Category      string  `json:"category"`
	InStock       *bool   `json:"in_stock"`
	StockOverride bool    `json:"stock_override"`
}

// CreateInventoryRecord : saisie manuelle depuis le dashboard commerçant.
// Le in_stock est normalisé ici, à la frontière d'ingestion.
func CreateInventoryRecord(c *gin.Context) {
	storeID := c.GetString("store_id")

	var input inventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, ok := invIndex.Store(storeID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Magasin introuvable"})
		return
	}

	rec := models.InventoryRecord{
		ID:            uuid.NewString(),
		StoreID:       storeID,
		RetailerKey:   store.RetailerKey,
		SKU:           input.SKU,
		ProductName:   input.ProductName,
		Price:         input.Price,
		Quantity:      input.Quantity,
		Category:      input.Category,
		StockOverride: input.StockOverride,
		UpdatedAt:     time.Now(),
	}
	if input.StockOverride && input.InStock != nil {
		rec.InStock = *input.InStock
	}
	rec.NormalizeStock()

	if err := database.DB.Create(&rec).Error; err != nil {
		log.Println("❌ Erreur création inventaire:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création enregistrement"})
		return
	}

	invIndex.Upsert(rec)
	cache.InvalidatePrefix("suggest:")
	cache.InvalidatePrefix("categories:")

	c.JSON(http.StatusOK, rec)
}

// UpdateInventoryRecord remplace prix/quantité/catégorie d'un enregistrement
// du magasin du commerçant connecté.
func UpdateInventoryRecord(c *gin.Context) {
	storeID := c.GetString("store_id")
	recordID := c.Param("id")

	existing, ok := invIndex.Record(recordID)
	if !ok || existing.StoreID != storeID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Enregistrement introuvable"})
		return
	}

	var input inventoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing.ProductName = input.ProductName
	existing.Price = input.Price
	existing.Quantity = input.Quantity
	if input.Category != "" {
		existing.Category = input.Category
	}
	if input.SKU != "" {
		existing.SKU = input.SKU
	}
	existing.StockOverride = input.StockOverride
	if input.StockOverride && input.InStock != nil {
		existing.InStock = *input.InStock
	}
	existing.NormalizeStock()
	existing.UpdatedAt = time.Now()

	if err := database.DB.Save(&existing).Error; err != nil {
		log.Println("❌ Erreur mise à jour inventaire:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour"})
		return
	}

	invIndex.Upsert(existing)
	c.JSON(http.StatusOK, existing)
}

// DeleteInventoryRecord : retrait explicite (seul chemin de suppression dure).
func DeleteInventoryRecord(c *gin.Context) {
	storeID := c.GetString("store_id")
	recordID := c.Param("id")

	existing, ok := invIndex.Record(recordID)
	if !ok || existing.StoreID != storeID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Enregistrement introuvable"})
		return
	}

	if err := database.DB.Delete(&models.InventoryRecord{}, "id = ?", recordID).Error; err != nil {
		log.Println("❌ Erreur suppression inventaire:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression"})
		return
	}

	invIndex.Remove(recordID)
	c.JSON(http.StatusOK, gin.H{"deleted": recordID})
}
