package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"

	"proxi_back_end/internal/config"
	"proxi_back_end/internal/database"
	"proxi_back_end/internal/handlers"
	"proxi_back_end/internal/inventory"
	"proxi_back_end/internal/linking"
	"proxi_back_end/internal/routes"
	"proxi_back_end/internal/search"
	"proxi_back_end/internal/seed"
)

func main() {
	config.Load()

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
	if stripe.Key == "" {
		log.Println("⚠️ STRIPE_SECRET_KEY absente — facturation en mode test")
	}

	database.ConnectDatabases()
	database.Migrate()

	if err := seed.SeedIfEmpty(database.DB); err != nil {
		log.Fatal("❌ Seed impossible:", err)
	}

	catalog, err := seed.LoadCatalog(database.DB)
	if err != nil {
		log.Fatal("❌ Chargement catalogue:", err)
	}
	stores, records, err := seed.LoadIndexData(database.DB)
	if err != nil {
		log.Fatal("❌ Chargement inventaire:", err)
	}

	index := inventory.NewIndex()
	index.Load(stores, records)
	log.Printf("✅ Index chargé : %d magasins, %d enregistrements", len(stores), len(records))

	cfg := search.DefaultConfig()
	cfg.MaxRadiusMiles = config.GetEnvFloat("MAX_RADIUS_MILES", cfg.MaxRadiusMiles)
	cfg.DefaultRadiusMiles = config.GetEnvFloat("DEFAULT_RADIUS_MILES", cfg.DefaultRadiusMiles)
	cfg.MaxLimit = config.GetEnvInt("MAX_PAGE_SIZE", cfg.MaxLimit)
	cfg.DefaultLat = config.GetEnvFloat("DEFAULT_LAT", cfg.DefaultLat)
	cfg.DefaultLng = config.GetEnvFloat("DEFAULT_LNG", cfg.DefaultLng)

	links := linking.NewGenerator(nil)
	engine := search.NewEngine(catalog, index, links, cfg)
	handlers.Setup(engine, index, links)

	r := gin.Default()
	routes.RegisterRoutes(r)

	port := config.GetEnv("PORT", "8080")
	log.Println("🚀 Serveur Proxi démarré sur le port " + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("❌ Erreur démarrage serveur:", err)
	}
}
