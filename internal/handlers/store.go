package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"proxi_back_end/internal/config"
	"proxi_back_end/internal/geo"
	"proxi_back_end/internal/inventory"
)

// GetStoresNear liste les magasins dans le rayon, triés par distance.
// GET /api/stores/near?lat=..&lng=..&radius=..&retailer=..&city=..&state=..
func GetStoresNear(c *gin.Context) {
	lat := parseFloatQuery(c, "lat", config.GetEnvFloat("DEFAULT_LAT", 40.7128))
	lng := parseFloatQuery(c, "lng", config.GetEnvFloat("DEFAULT_LNG", -74.0060))
	radius := parseFloatQuery(c, "radius", 10)

	maxRadius := config.GetEnvFloat("MAX_RADIUS_MILES", 50)
	if radius > maxRadius {
		radius = maxRadius
	}

	filter := inventory.StoreFilter{
		Retailer: c.Query("retailer"),
		City:     c.Query("city"),
		State:    c.Query("state"),
	}

	stores, err := invIndex.StoresNear(lat, lng, radius, filter)
	if err != nil {
		log.Println("❌ Erreur magasins à proximité:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	type storeResult struct {
		Store         any                  `json:"store"`
		DistanceMiles float64              `json:"distance_miles"`
		Delivery      geo.DeliveryEstimate `json:"delivery_estimate"`
	}
	out := make([]storeResult, 0, len(stores))
	for _, s := range stores {
		out = append(out, storeResult{
			Store:         s.Item,
			DistanceMiles: s.DistanceMiles,
			Delivery:      geo.EstimateDeliveryTime(s.DistanceMiles),
		})
	}

	c.JSON(http.StatusOK, gin.H{"stores": out, "radius_miles": radius})
}

// GetStoreByID retourne la fiche magasin, avec distance si lat/lng fournis.
func GetStoreByID(c *gin.Context) {
	store, ok := invIndex.Store(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Magasin introuvable"})
		return
	}

	resp := gin.H{"store": store}
	if latStr, lngStr := c.Query("lat"), c.Query("lng"); latStr != "" && lngStr != "" {
		lat, err1 := strconv.ParseFloat(latStr, 64)
		lng, err2 := strconv.ParseFloat(lngStr, 64)
		if err1 == nil && err2 == nil {
			d := geo.Distance(lat, lng, store.Latitude, store.Longitude)
			resp["distance_miles"] = d
			resp["delivery_estimate"] = geo.EstimateDeliveryTime(d)
		}
	}

	c.JSON(http.StatusOK, resp)
}

// GetStoreInventory : listing "page magasin", indépendant du ranking de
// recherche. Filtres catégorie / texte / bornes de prix.
func GetStoreInventory(c *gin.Context) {
	storeID := c.Param("id")
	if _, ok := invIndex.Store(storeID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Magasin introuvable"})
		return
	}

	filter := inventory.RecordFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}
	if v := c.Query("min_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := c.Query("max_price"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}

	records, err := invIndex.InventoryForStore(storeID, filter)
	if err != nil {
		log.Println("❌ Erreur inventaire magasin:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"store_id": storeID, "inventory": records, "count": len(records)})
}

func parseFloatQuery(c *gin.Context, key string, fallback float64) float64 {
	if v := c.Query(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
