package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Load() {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}
}

// GetEnv retourne la variable d'environnement ou le défaut fourni.
func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetEnvFloat parse la variable en float64, défaut si absente ou invalide.
func GetEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("⚠️ %s invalide (%q) — utilisation du défaut %.4f", key, v, fallback)
	}
	return fallback
}

// GetEnvInt parse la variable en int, défaut si absente ou invalide.
func GetEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("⚠️ %s invalide (%q) — utilisation du défaut %d", key, v, fallback)
	}
	return fallback
}
