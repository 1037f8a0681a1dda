// Package seed génère des données synthétiques (enseignes, magasins,
// catalogue, inventaire) pour une zone métropolitaine. Remplace la sortie du
// pipeline de scraping, hors périmètre : les données sont déterministes pour
// que les environnements de dev se ressemblent.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"proxi_back_end/internal/models"
)

var retailers = []models.Retailer{
	{Key: "walmart", Name: "Walmart", Website: "https://www.walmart.com"},
	{Key: "target", Name: "Target", Website: "https://www.target.com"},
	{Key: "homedepot", Name: "Home Depot", Website: "https://www.homedepot.com"},
	{Key: "bestbuy", Name: "Best Buy", Website: "https://www.bestbuy.com"},
	{Key: "acehardware", Name: "Ace Hardware", Website: "https://www.acehardware.com"},
	{Key: "cvs", Name: "CVS Pharmacy", Website: "https://www.cvs.com"},
}

var stores = []models.Store{
	{ID: "wm-001", RetailerKey: "walmart", Name: "Walmart Downtown Brooklyn", Address: "1 Flatbush Ave", Latitude: 40.6930, Longitude: -73.9870, City: "Brooklyn", State: "NY", Phone: "(718) 555-0101", Hours: "Lun-Dim 7h-23h"},
	{ID: "wm-002", RetailerKey: "walmart", Name: "Walmart Secaucus", Address: "400 Park Pl", Latitude: 40.7895, Longitude: -74.0565, City: "Secaucus", State: "NJ", Phone: "(201) 555-0102", Hours: "Lun-Dim 6h-23h"},
	{ID: "tg-001", RetailerKey: "target", Name: "Target Atlantic Terminal", Address: "139 Flatbush Ave", Latitude: 40.6845, Longitude: -73.9780, City: "Brooklyn", State: "NY", Phone: "(718) 555-0201", Hours: "Lun-Dim 8h-22h"},
	{ID: "tg-002", RetailerKey: "target", Name: "Target Herald Square", Address: "112 W 34th St", Latitude: 40.7497, Longitude: -73.9878, City: "New York", State: "NY", Phone: "(212) 555-0202", Hours: "Lun-Dim 8h-22h"},
	{ID: "hd-001", RetailerKey: "homedepot", Name: "Home Depot Northern Blvd", Address: "50-10 Northern Blvd", Latitude: 40.7440, Longitude: -73.9190, City: "Queens", State: "NY", Phone: "(718) 555-0301", Hours: "Lun-Sam 6h-22h, Dim 7h-20h"},
	{ID: "hd-002", RetailerKey: "homedepot", Name: "Home Depot 23rd St", Address: "40 W 23rd St", Latitude: 40.7424, Longitude: -73.9916, City: "New York", State: "NY", Phone: "(212) 555-0302", Hours: "Lun-Sam 6h-22h, Dim 7h-20h"},
	{ID: "bb-001", RetailerKey: "bestbuy", Name: "Best Buy Midtown", Address: "531 5th Ave", Latitude: 40.7580, Longitude: -73.9855, City: "New York", State: "NY", Phone: "(212) 555-0401", Hours: "Lun-Sam 10h-21h, Dim 11h-19h"},
	{ID: "ah-001", RetailerKey: "acehardware", Name: "Ace Hardware Park Slope", Address: "305 7th Ave", Latitude: 40.6650, Longitude: -73.9830, City: "Brooklyn", State: "NY", Phone: "(718) 555-0501", Hours: "Lun-Sam 8h-20h, Dim 9h-18h"},
	{ID: "cv-001", RetailerKey: "cvs", Name: "CVS Court Street", Address: "120 Court St", Latitude: 40.6895, Longitude: -73.9930, City: "Brooklyn", State: "NY", Phone: "(718) 555-0601", Hours: "24h/24"},
}

var products = []models.Product{
	{SKU: "DRL-100", Name: "DeWalt Cordless Drill 20V", Brand: "DeWalt", Category: "hardware", BasePrice: 129.99, Keywords: []string{"drill", "cordless", "power tools"}, Retailers: []string{"walmart", "homedepot", "acehardware"}},
	{SKU: "DRL-101", Name: "Black+Decker Drill Driver", Brand: "Black+Decker", Category: "hardware", BasePrice: 49.99, Keywords: []string{"drill", "driver"}, Retailers: []string{"walmart", "target", "homedepot"}},
	{SKU: "HAM-200", Name: "Stanley Claw Hammer 16oz", Brand: "Stanley", Category: "hardware", BasePrice: 19.99, Keywords: []string{"hammer", "tools"}, Retailers: []string{"walmart", "homedepot", "acehardware"}},
	{SKU: "SCR-210", Name: "Phillips Screwdriver Set", Brand: "Craftsman", Category: "hardware", BasePrice: 24.50, Keywords: []string{"screwdriver", "tools", "set"}, Retailers: []string{"homedepot", "acehardware"}},
	{SKU: "LAD-220", Name: "Werner 6ft Step Ladder", Brand: "Werner", Category: "hardware", BasePrice: 89.00, Keywords: []string{"ladder", "step"}, Retailers: []string{"homedepot"}},
	{SKU: "VAC-300", Name: "Dyson V11 Cordless Vacuum", Brand: "Dyson", Category: "appliances", BasePrice: 469.99, Keywords: []string{"vacuum", "cordless"}, Retailers: []string{"target", "bestbuy"}},
	{SKU: "MWV-310", Name: "Toshiba Microwave Oven", Brand: "Toshiba", Category: "appliances", BasePrice: 119.99, Keywords: []string{"microwave", "oven", "kitchen"}, Retailers: []string{"walmart", "target", "bestbuy"}},
	{SKU: "BLD-320", Name: "Ninja Professional Blender", Brand: "Ninja", Category: "appliances", BasePrice: 99.99, Keywords: []string{"blender", "kitchen", "smoothie"}, Retailers: []string{"walmart", "target"}},
	{SKU: "LED-400", Name: "Philips LED Bulb 4-Pack", Brand: "Philips", Category: "electrical", BasePrice: 12.49, Keywords: []string{"bulb", "light", "led"}, Retailers: []string{"walmart", "homedepot", "acehardware"}},
	{SKU: "EXT-410", Name: "Extension Cord 25ft", Brand: "GE", Category: "electrical", BasePrice: 18.99, Keywords: []string{"extension", "cord", "power"}, Retailers: []string{"walmart", "homedepot"}},
	{SKU: "TVS-500", Name: "Samsung 55in 4K Smart TV", Brand: "Samsung", Category: "electronics", BasePrice: 549.99, Keywords: []string{"tv", "television", "4k", "smart"}, Retailers: []string{"walmart", "target", "bestbuy"}},
	{SKU: "HDP-510", Name: "Sony WH-1000XM5 Headphones", Brand: "Sony", Category: "electronics", BasePrice: 399.99, Keywords: []string{"headphones", "wireless", "noise cancelling"}, Retailers: []string{"target", "bestbuy"}},
	{SKU: "CHG-520", Name: "Anker USB-C Charger 65W", Brand: "Anker", Category: "electronics", BasePrice: 39.99, Keywords: []string{"charger", "usb-c", "power"}, Retailers: []string{"walmart", "bestbuy", "target"}},
	{SKU: "PLL-600", Name: "Advil Ibuprofen 200ct", Brand: "Advil", Category: "pharmacy", BasePrice: 21.99, Keywords: []string{"ibuprofen", "pain relief"}, Retailers: []string{"cvs", "walmart", "target"}},
	{SKU: "VIT-610", Name: "Nature Made Vitamin D3", Brand: "Nature Made", Category: "pharmacy", BasePrice: 14.99, Keywords: []string{"vitamin", "supplement"}, Retailers: []string{"cvs", "walmart"}},
	{SKU: "PNT-700", Name: "Behr Interior Paint 1gal", Brand: "Behr", Category: "paint", BasePrice: 36.98, Keywords: []string{"paint", "interior", "wall"}, Retailers: []string{"homedepot"}},
	{SKU: "BRH-710", Name: "Paint Brush Set 5pc", Brand: "Purdy", Category: "paint", BasePrice: 27.50, Keywords: []string{"paint", "brush", "roller"}, Retailers: []string{"homedepot", "acehardware", "walmart"}},
	{SKU: "GLV-800", Name: "Work Gloves Leather L", Brand: "Carhartt", Category: "safety", BasePrice: 22.99, Keywords: []string{"gloves", "work", "safety"}, Retailers: []string{"homedepot", "acehardware"}},
	{SKU: "MSK-810", Name: "N95 Respirator 10-Pack", Brand: "3M", Category: "safety", BasePrice: 17.99, Keywords: []string{"mask", "respirator", "n95"}, Retailers: []string{"homedepot", "cvs", "walmart"}},
	{SKU: "BAT-900", Name: "Duracell AA Batteries 24ct", Brand: "Duracell", Category: "electrical", BasePrice: 15.99, Keywords: []string{"batteries", "aa"}, Retailers: []string{"walmart", "target", "cvs", "bestbuy", "acehardware"}},
}

// SeedIfEmpty insère les données synthétiques si la table des magasins est
// vide. Idempotent : relancer le serveur ne duplique rien.
func SeedIfEmpty(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Store{}).Count(&count).Error; err != nil {
		return fmt.Errorf("comptage magasins: %w", err)
	}
	if count > 0 {
		log.Println("✅ Données déjà présentes — seed ignoré")
		return nil
	}

	now := time.Now()
	if err := db.Create(&retailers).Error; err != nil {
		return fmt.Errorf("seed enseignes: %w", err)
	}
	for i := range stores {
		stores[i].CreatedAt = now
		if !stores[i].HasValidCoordinates() {
			return fmt.Errorf("magasin %s: coordonnées invalides", stores[i].ID)
		}
	}
	if err := db.Create(&stores).Error; err != nil {
		return fmt.Errorf("seed magasins: %w", err)
	}
	for i := range products {
		products[i].CreatedAt = now
		products[i].UpdatedAt = now
	}
	if err := db.Create(&products).Error; err != nil {
		return fmt.Errorf("seed catalogue: %w", err)
	}

	records := buildInventory(now)
	if err := db.CreateInBatches(&records, 200).Error; err != nil {
		return fmt.Errorf("seed inventaire: %w", err)
	}

	log.Printf("✅ Seed terminé : %d enseignes, %d magasins, %d produits, %d enregistrements",
		len(retailers), len(stores), len(products), len(records))
	return nil
}

// buildInventory croise produits × magasins des enseignes porteuses, avec un
// prix légèrement dispersé autour du prix de base et des ruptures ponctuelles.
// Graine fixe : inventaire reproductible.
func buildInventory(now time.Time) []models.InventoryRecord {
	rng := rand.New(rand.NewSource(42))

	var records []models.InventoryRecord
	for _, p := range products {
		for _, s := range stores {
			if !p.CarriedBy(s.RetailerKey) {
				continue
			}
			// Dispersion de prix ±12%, arrondie au centime.
			factor := 0.88 + rng.Float64()*0.24
			price := float64(int(p.BasePrice*factor*100)) / 100

			qty := rng.Intn(25)
			if rng.Intn(10) == 0 {
				qty = 0 // rupture ponctuelle
			}

			rec := models.InventoryRecord{
				ID:          uuid.NewString(),
				StoreID:     s.ID,
				RetailerKey: s.RetailerKey,
				SKU:         p.SKU,
				ProductName: p.Name,
				Price:       price,
				Quantity:    qty,
				Category:    p.Category,
				UpdatedAt:   now,
			}
			rec.NormalizeStock()
			records = append(records, rec)
		}
	}
	return records
}

// LoadCatalog retourne l'instantané immuable du catalogue pour le moteur.
func LoadCatalog(db *gorm.DB) ([]models.Product, error) {
	var catalog []models.Product
	if err := db.Order("sku").Find(&catalog).Error; err != nil {
		return nil, fmt.Errorf("chargement catalogue: %w", err)
	}
	return catalog, nil
}

// LoadIndexData charge magasins et inventaire pour construire l'index mémoire.
func LoadIndexData(db *gorm.DB) ([]models.Store, []models.InventoryRecord, error) {
	var allStores []models.Store
	if err := db.Order("id").Find(&allStores).Error; err != nil {
		return nil, nil, fmt.Errorf("chargement magasins: %w", err)
	}
	var allRecords []models.InventoryRecord
	if err := db.Order("id").Find(&allRecords).Error; err != nil {
		return nil, nil, fmt.Errorf("chargement inventaire: %w", err)
	}
	return allStores, allRecords, nil
}
