package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"proxi_back_end/internal/database"
	"proxi_back_end/internal/models"
)

// createNotification insère une notification utilisateur, best-effort.
func createNotification(userID, notifType, message string) {
	n := models.Notification{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      notifType,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := database.DB.Create(&n).Error; err != nil {
		log.Println("⚠️ Erreur création notification:", err)
	}
}

func GetNotifications(c *gin.Context) {
	userID := c.GetString("user_id")

	var notifs []models.Notification
	err := database.DB.Where("user_id = ?", userID).
		Order("created_at desc").Limit(50).Find(&notifs).Error
	if err != nil {
		log.Println("❌ Erreur récupération notifications:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération notifications"})
		return
	}

	unread := 0
	for _, n := range notifs {
		if !n.Read {
			unread++
		}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifs, "unread": unread})
}

func MarkNotificationRead(c *gin.Context) {
	userID := c.GetString("user_id")

	res := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Update("read", true)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour"})
		return
	}
	if res.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification introuvable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"read": c.Param("id")})
}
