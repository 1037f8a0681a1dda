package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"proxi_back_end/internal/database"
	"proxi_back_end/internal/models"
	"proxi_back_end/internal/utils"
)

type orderItemInput struct {
	InventoryID string `json:"inventory_id" binding:"required"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

type orderInput struct {
	StoreID string           `json:"store_id" binding:"required"`
	Items   []orderItemInput `json:"items" binding:"required,min=1"`
}

// CreateOrder passe une commande retrait : décrémente les quantités (index +
// base) et crée la commande. La recherche est consultative ; c'est ici que la
// disponibilité fait autorité — le stock épuisé entre recherche et commande
// fait échouer la commande, c'est accepté.
func CreateOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	var input orderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	store, ok := invIndex.Store(input.StoreID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Magasin introuvable"})
		return
	}

	// Décrément item par item, avec restauration de ce qui a déjà été pris
	// si un article manque.
	var taken []orderItemInput
	rollback := func() {
		for _, t := range taken {
			if _, err := invIndex.AdjustQuantity(t.InventoryID, t.Quantity); err != nil {
				log.Println("⚠️ Échec restauration stock:", err)
			}
		}
	}

	order := models.Order{
		ID:        uuid.NewString(),
		UserID:    userID,
		StoreID:   input.StoreID,
		Status:    "confirmed",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	for _, item := range input.Items {
		rec, ok := invIndex.Record(item.InventoryID)
		if !ok || rec.StoreID != input.StoreID {
			rollback()
			c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans ce magasin"})
			return
		}

		if _, err := invIndex.AdjustQuantity(item.InventoryID, -item.Quantity); err != nil {
			rollback()
			c.JSON(http.StatusConflict, gin.H{"error": "Stock insuffisant pour " + rec.ProductName})
			return
		}
		taken = append(taken, item)

		order.Items = append(order.Items, models.OrderItem{
			ID:          uuid.NewString(),
			OrderID:     order.ID,
			InventoryID: rec.ID,
			SKU:         rec.SKU,
			ProductName: rec.ProductName,
			Price:       rec.Price,
			Quantity:    item.Quantity,
		})
		order.AmountTotal += rec.Price * float64(item.Quantity)
	}

	// Persistance : commande + quantités décrémentées, dans une transaction.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			rec, _ := invIndex.Record(item.InventoryID)
			if err := tx.Model(&models.InventoryRecord{}).Where("id = ?", item.InventoryID).
				Updates(map[string]any{"quantity": rec.Quantity, "in_stock": rec.InStock, "updated_at": time.Now()}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		rollback()
		log.Println("❌ Erreur persistance commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement commande"})
		return
	}

	createNotification(userID, "order_placed",
		"Commande confirmée chez "+store.Name+" — retrait "+store.Hours)

	// Confirmation par e-mail, best-effort, hors du chemin de réponse.
	email := c.GetString("email")
	if email != "" {
		go func(order models.Order, storeName, to string) {
			if err := utils.SendOrderConfirmationEmail(to, order, storeName); err != nil {
				log.Println("⚠️ Échec envoi e-mail de confirmation:", err)
			}
		}(order, store.Name, email)
	}

	log.Printf("✅ Commande %s créée (%.2f) chez %s", order.ID, order.AmountTotal, store.Name)
	c.JSON(http.StatusOK, order)
}

// GetMyOrders liste les commandes de l'utilisateur connecté, récentes d'abord.
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")

	var orders []models.Order
	err := database.DB.Preload("Items").Where("user_id = ?", userID).
		Order("created_at desc").Find(&orders).Error
	if err != nil {
		log.Println("❌ Erreur récupération commandes:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func GetOrderByID(c *gin.Context) {
	userID := c.GetString("user_id")

	var order models.Order
	err := database.DB.Preload("Items").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	c.JSON(http.StatusOK, order)
}

// CancelOrder annule une commande non retirée et restaure les quantités.
func CancelOrder(c *gin.Context) {
	userID := c.GetString("user_id")

	var order models.Order
	err := database.DB.Preload("Items").
		Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&order).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	if order.Status == "cancelled" {
		c.JSON(http.StatusConflict, gin.H{"error": "Commande déjà annulée"})
		return
	}
	if order.Status == "ready" {
		c.JSON(http.StatusConflict, gin.H{"error": "Commande déjà préparée — annulation au comptoir uniquement"})
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Updates(map[string]any{"status": "cancelled", "updated_at": time.Now()}).Error; err != nil {
			return err
		}
		for _, item := range order.Items {
			rec, err := invIndex.AdjustQuantity(item.InventoryID, item.Quantity)
			if err != nil {
				// Enregistrement supprimé entre-temps : on annule quand même
				// la commande, le stock ne peut plus être restauré.
				log.Println("⚠️ Restauration stock impossible:", err)
				continue
			}
			if err := tx.Model(&models.InventoryRecord{}).Where("id = ?", item.InventoryID).
				Updates(map[string]any{"quantity": rec.Quantity, "in_stock": rec.InStock, "updated_at": time.Now()}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Println("❌ Erreur annulation commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur annulation"})
		return
	}

	createNotification(userID, "order_cancelled", "Commande "+order.ID+" annulée, stock restauré")

	log.Printf("✅ Commande %s annulée", order.ID)
	c.JSON(http.StatusOK, gin.H{"cancelled": order.ID})
}
