package models

import (
	"time"
)

// Store est un point de vente physique. Créé au seed, lecture seule au moment
// de la recherche. Invariant : lat ∈ [-90,90], lng ∈ [-180,180].
type Store struct {
	ID          string    `json:"id" gorm:"primaryKey;size:60"`
	RetailerKey string    `json:"retailer" gorm:"size:40;index"`
	Name        string    `json:"name" gorm:"size:180"`
	Address     string    `json:"address" gorm:"size:240"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	City        string    `json:"city" gorm:"size:100;index"`
	State       string    `json:"state" gorm:"size:40;index"`
	Phone       string    `json:"phone" gorm:"size:40"`
	Hours       string    `json:"hours" gorm:"size:200"`
	CreatedAt   time.Time `json:"created_at"`
}

// Coordinates satisfait geo.Located.
func (s Store) Coordinates() (float64, float64) {
	return s.Latitude, s.Longitude
}

// HasValidCoordinates vérifie l'invariant géographique avant insertion.
func (s Store) HasValidCoordinates() bool {
	return s.Latitude >= -90 && s.Latitude <= 90 &&
		s.Longitude >= -180 && s.Longitude <= 180
}
