package models

import (
	"time"
)

// Tiers d'abonnement des commerçants. Le paiement Stripe est simulé quand
// aucune clé n'est configurée (mode test).
const (
	TierFree    = "free"
	TierPremium = "premium"
	TierPro     = "pro"
)

type Subscription struct {
	ID               string    `json:"id" gorm:"primaryKey;size:60"`
	UserID           string    `json:"user_id" gorm:"uniqueIndex;size:60"`
	Tier             string    `json:"tier" gorm:"size:20"`
	Status           string    `json:"status" gorm:"size:20"` // "active", "pending", "cancelled"
	StripeID         string    `json:"stripe_id" gorm:"size:120"`
	CurrentPeriodEnd time.Time `json:"current_period_end"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TierPrice retourne le prix mensuel d'un tier en centimes (pour Stripe).
func TierPrice(tier string) int64 {
	switch tier {
	case TierPremium:
		return 1999
	case TierPro:
		return 4999
	default:
		return 0
	}
}
