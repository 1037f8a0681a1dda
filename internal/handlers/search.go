package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"proxi_back_end/internal/cache"
	"proxi_back_end/internal/inventory"
	"proxi_back_end/internal/search"
)

// SearchProducts est l'opération principale : POST /api/search.
// La validation clampable (rayon, page, limit) est absorbée par le moteur ;
// une requête mal formée JSON reste un 400.
func SearchProducts(c *gin.Context) {
	var req search.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Corps de requête invalide: " + err.Error()})
		return
	}

	resp, err := searchEngine.Search(req)
	if err != nil {
		// Échec provider ≠ zéro résultat : on remonte un 500, jamais un
		// succès vide.
		if errors.Is(err, inventory.ErrNotReady) {
			log.Println("❌ Recherche avant chargement de l'index:", err)
		} else {
			log.Println("❌ Erreur recherche:", err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur interne de recherche"})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetCategories liste les catégories du catalogue avec compteurs (cache Redis).
func GetCategories(c *gin.Context) {
	cacheKey := "categories:counts"

	var cached []search.CategoryCount
	if cache.GetJSON(cacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"categories": cached})
		return
	}

	cats := searchEngine.Categories()
	cache.SetJSON(cacheKey, cats, cache.CategoriesCacheTTL)

	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// GetSuggestions : autocomplétion, préfixe d'au moins 2 caractères.
func GetSuggestions(c *gin.Context) {
	prefix := c.Query("q")
	if len(prefix) < 2 {
		c.JSON(http.StatusOK, gin.H{"suggestions": []string{}})
		return
	}

	cacheKey := "suggest:" + prefix
	var cached []string
	if cache.GetJSON(cacheKey, &cached) {
		c.JSON(http.StatusOK, gin.H{"suggestions": cached})
		return
	}

	suggestions := searchEngine.Suggest(prefix)
	cache.SetJSON(cacheKey, suggestions, cache.SuggestCacheTTL)

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// GetLinkQR renvoie le lien d'achat d'une enseigne en PNG (QR) pour le
// handoff mobile.
func GetLinkQR(c *gin.Context) {
	retailer := c.Query("retailer")
	product := c.Query("product")
	brand := c.Query("brand")

	if retailer == "" || product == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Les paramètres 'retailer' et 'product' sont obligatoires"})
		return
	}

	link := linkGen.PurchaseURL(retailer, product, brand)
	if link == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Enseigne inconnue"})
		return
	}

	png, err := linkGen.QRPNG(link)
	if err != nil {
		log.Println("❌ Erreur génération QR:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur génération QR"})
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}
