package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"proxi_back_end/internal/database"
	"proxi_back_end/internal/models"
	"proxi_back_end/internal/utils"
)

type registerInput struct {
	Email    string  `json:"email" binding:"required,email"`
	Name     string  `json:"name" binding:"required"`
	Password string  `json:"password" binding:"required,min=8"`
	Role     string  `json:"role"`
	StoreID  *string `json:"store_id"`
}

func Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))

	var existing models.User
	if err := database.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte existe déjà avec cet e-mail"})
		return
	}

	role := "client"
	if input.Role == "merchant" {
		if input.StoreID == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Un compte commerçant doit être rattaché à un magasin"})
			return
		}
		if _, ok := invIndex.Store(*input.StoreID); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Magasin introuvable"})
			return
		}
		role = "merchant"
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur hashage mot de passe"})
		return
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         role,
		StoreID:      input.StoreID,
		CreatedAt:    time.Now(),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		log.Println("❌ Erreur création utilisateur:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création compte"})
		return
	}

	// Les commerçants démarrent au tier gratuit.
	if role == "merchant" {
		sub := models.Subscription{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Tier:      models.TierFree,
			Status:    "active",
			CreatedAt: time.Now(),
		}
		if err := database.DB.Create(&sub).Error; err != nil {
			log.Println("⚠️ Erreur création abonnement gratuit:", err)
		}
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Compte créé: %s (%s)", email, role)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

type loginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if !utils.CheckPassword(user.PasswordHash, input.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides"})
		return
	}

	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération token"})
		return
	}

	log.Printf("✅ Connexion: %s", user.Email)
	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}
