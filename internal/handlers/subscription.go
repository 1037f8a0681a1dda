package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"github.com/stripe/stripe-go/v83/webhook"

	"proxi_back_end/internal/database"
	"proxi_back_end/internal/models"
)

// GetSubscription retourne l'abonnement du commerçant connecté (tier gratuit
// implicite si aucune ligne).
func GetSubscription(c *gin.Context) {
	userID := c.GetString("user_id")

	var sub models.Subscription
	if err := database.DB.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"subscription": gin.H{
			"tier":   models.TierFree,
			"status": "active",
		}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"subscription": sub})
}

type upgradeInput struct {
	Tier string `json:"tier" binding:"required"`
}

// UpgradeSubscription fait passer le commerçant au tier demandé. Facturation
// Stripe simulée : sans STRIPE_SECRET_KEY on active immédiatement avec un
// identifiant fictif ; avec une clé, on crée un PaymentIntent et le webhook
// activera l'abonnement.
func UpgradeSubscription(c *gin.Context) {
	userID := c.GetString("user_id")

	var input upgradeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Tier != models.TierPremium && input.Tier != models.TierPro {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Tier inconnu (premium ou pro)"})
		return
	}

	var sub models.Subscription
	if err := database.DB.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		sub = models.Subscription{ID: uuid.NewString(), UserID: userID, CreatedAt: time.Now()}
	}

	sub.Tier = input.Tier
	sub.UpdatedAt = time.Now()
	sub.CurrentPeriodEnd = time.Now().AddDate(0, 1, 0)

	if stripe.Key == "" {
		// ⚠️ Mode test : pas de clé Stripe, activation immédiate.
		sub.StripeID = "pi_mock_" + uuid.NewString()
		sub.Status = "active"
		if err := database.DB.Save(&sub).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement abonnement"})
			return
		}
		log.Printf("💳 Abonnement %s activé en mode test pour %s", sub.Tier, userID)
		c.JSON(http.StatusOK, gin.H{"subscription": sub, "mock": true})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(models.TierPrice(input.Tier)),
		Currency: stripe.String("eur"),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
		Metadata: map[string]string{
			"user_id": userID,
			"tier":    input.Tier,
		},
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		log.Println("❌ Erreur Stripe:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sub.StripeID = intent.ID
	sub.Status = "pending"
	if err := database.DB.Save(&sub).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement abonnement"})
		return
	}

	log.Printf("💳 PaymentIntent créé : %s (tier %s) pour %s", intent.ID, input.Tier, userID)
	c.JSON(http.StatusOK, gin.H{
		"clientSecret": intent.ClientSecret,
		"paymentId":    intent.ID,
		"subscription": sub,
	})
}

// StripeWebhook active les abonnements payés.
func StripeWebhook(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	var event stripe.Event

	if secret == "" {
		log.Println("⚠️ Pas de STRIPE_WEBHOOK_SECRET — mode test")
		if err := json.Unmarshal(payload, &event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
			return
		}
	} else {
		event, err = webhook.ConstructEvent(payload, c.GetHeader("Stripe-Signature"), secret)
		if err != nil {
			log.Println("❌ Signature webhook invalide:", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Signature invalide"})
			return
		}
	}

	if event.Type != "payment_intent.succeeded" {
		c.JSON(http.StatusOK, gin.H{"ignored": string(event.Type)})
		return
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "PaymentIntent invalide"})
		return
	}

	res := database.DB.Model(&models.Subscription{}).
		Where("stripe_id = ?", intent.ID).
		Updates(map[string]any{"status": "active", "updated_at": time.Now()})
	if res.Error != nil || res.RowsAffected == 0 {
		log.Printf("⚠️ Abonnement introuvable pour PaymentIntent %s", intent.ID)
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	log.Printf("✅ Abonnement activé via webhook (%s)", intent.ID)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
