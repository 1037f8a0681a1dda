package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"proxi_back_end/internal/models"
)

// --- Variables Globales ---
var (
	DB    *gorm.DB
	Redis *redis.Client
)

// ConnectDatabases initialise Postgres (GORM) puis Redis. Fatal si le
// relationnel est indisponible ; Redis dégradé est toléré (cache best-effort).
func ConnectDatabases() {
	connectPostgres()
	connectRedis()

	log.Println("✅ Toutes les bases de données sont connectées")
}

func connectPostgres() {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		host := getEnv("DB_HOST", "localhost")
		port := getEnv("DB_PORT", "5432")
		user := getEnv("DB_USER", "postgres")
		pass := getEnv("DB_PASSWORD", "postgres")
		name := getEnv("DB_NAME", "proxi")
		ssl := getEnv("DB_SSLMODE", "disable")
		dsn = "host=" + host + " port=" + port + " user=" + user +
			" password=" + pass + " dbname=" + name + " sslmode=" + ssl
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Échec connexion Postgres: %v", err)
	}
	DB = db
	log.Println("✅ Postgres connecté")
}

// Migrate crée/ajuste les tables de tous les modèles.
func Migrate() {
	err := DB.AutoMigrate(
		&models.Retailer{},
		&models.Product{},
		&models.Store{},
		&models.InventoryRecord{},
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.Subscription{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("❌ Échec migration: %v", err)
	}
	log.Println("✅ Migrations appliquées")
}

func connectRedis() {
	addr := getEnv("REDIS_ADDR", "localhost:6379")
	Redis = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Printf("⚠️ Redis indisponible (%v) — cache désactivé", err)
		return
	}
	log.Println("✅ Redis connecté")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
