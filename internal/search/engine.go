// Package search implémente la recherche produit géolocalisée : scoring
// textuel du catalogue, filtrage catégorie/enseigne/prix, intersection avec
// les magasins à proximité, agrégation prix/disponibilité par produit,
// classement et pagination. C'est l'unique implémentation du ranking — pas de
// second chemin SQL divergent.
package search

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"proxi_back_end/internal/geo"
	"proxi_back_end/internal/inventory"
	"proxi_back_end/internal/linking"
	"proxi_back_end/internal/models"
)

// Provider est la vue lecture seule sur les magasins et l'inventaire. Une
// erreur du provider remonte telle quelle : "rien trouvé" et "impossible de
// chercher" sont deux réponses différentes.
type Provider interface {
	StoresNear(lat, lng, radiusMiles float64, f inventory.StoreFilter) ([]geo.Nearby[models.Store], error)
	InventoryForStores(storeIDs map[string]struct{}, sku string) ([]models.InventoryRecord, error)
}

// Config porte les bornes et défauts appliqués côté moteur. Les valeurs hors
// bornes sont clampées, jamais rejetées.
type Config struct {
	MaxRadiusMiles     float64
	DefaultRadiusMiles float64
	MaxLimit           int
	DefaultLimit       int
	DefaultLat         float64
	DefaultLng         float64
	MaxOtherStores     int
}

func DefaultConfig() Config {
	return Config{
		MaxRadiusMiles:     50,
		DefaultRadiusMiles: 10,
		MaxLimit:           100,
		DefaultLimit:       20,
		DefaultLat:         40.7128, // centre-ville par défaut si le client n'envoie rien
		DefaultLng:         -74.0060,
		MaxOtherStores:     5,
	}
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Request est le corps de POST /api/search. Les pointeurs distinguent
// "absent" de "zéro" : un rayon 0 explicite est une requête valide (borne
// incluse), un rayon absent prend le défaut.
type Request struct {
	Query       string    `json:"query"`
	Location    *Location `json:"location"`
	RadiusMiles *float64  `json:"radiusMiles"`
	Category    string    `json:"category"`
	Retailer    string    `json:"retailer"`
	MinPrice    *float64  `json:"minPrice"`
	MaxPrice    *float64  `json:"maxPrice"`
	InStockOnly *bool     `json:"inStockOnly"`
	SortBy      string    `json:"sortBy"`
	SortOrder   string    `json:"sortOrder"`
	Page        int       `json:"page"`
	Limit       int       `json:"limit"`
}

// StoreOffer est l'offre d'un magasin pour un produit du résultat.
type StoreOffer struct {
	StoreID       string               `json:"store_id"`
	Retailer      string               `json:"retailer"`
	StoreName     string               `json:"store_name"`
	Address       string               `json:"address"`
	Price         float64              `json:"price"`
	Quantity      int                  `json:"quantity"`
	InStock       bool                 `json:"in_stock"`
	DistanceMiles float64              `json:"distance_miles"`
	PurchaseURL   string               `json:"purchase_url,omitempty"`
	Delivery      geo.DeliveryEstimate `json:"delivery_estimate"`
}

// Result est la projection en lecture d'un produit apparié (jamais persistée).
type Result struct {
	SKU          string       `json:"sku"`
	Name         string       `json:"name"`
	Brand        string       `json:"brand,omitempty"`
	Category     string       `json:"category"`
	BasePrice    float64      `json:"base_price"`
	BestPrice    float64      `json:"best_price"`
	StoreCount   int          `json:"store_count"`
	NearestStore *StoreOffer  `json:"nearest_store"`
	OtherStores  []StoreOffer `json:"other_stores,omitempty"`
	Score        int          `json:"relevance_score"`
}

type Pagination struct {
	Page         int `json:"page"`
	Limit        int `json:"limit"`
	TotalResults int `json:"totalResults"`
	TotalPages   int `json:"totalPages"`
}

// Applied renvoie au client les filtres effectivement appliqués après clamp.
type Applied struct {
	Query       string   `json:"query"`
	Location    Location `json:"location"`
	RadiusMiles float64  `json:"radiusMiles"`
	Category    string   `json:"category,omitempty"`
	Retailer    string   `json:"retailer,omitempty"`
	MinPrice    *float64 `json:"minPrice,omitempty"`
	MaxPrice    *float64 `json:"maxPrice,omitempty"`
	InStockOnly bool     `json:"inStockOnly"`
	SortBy      string   `json:"sortBy"`
	SortOrder   string   `json:"sortOrder"`
}

type Response struct {
	Results    []Result   `json:"results"`
	Pagination Pagination `json:"pagination"`
	Filters    Applied    `json:"filters"`
}

// Engine orchestre la recherche sur un instantané immuable du catalogue et
// un provider magasins/inventaire injecté. Chemin purement en lecture, sans
// verrou interne : sûr pour un nombre illimité d'appels concurrents.
type Engine struct {
	catalog  []models.Product
	provider Provider
	links    *linking.Generator
	cfg      Config
}

func NewEngine(catalog []models.Product, provider Provider, links *linking.Generator, cfg Config) *Engine {
	if cfg.MaxRadiusMiles <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{catalog: catalog, provider: provider, links: links, cfg: cfg}
}

// Search exécute le pipeline complet : scoring → filtres → géo → agrégation
// par produit → tri → pagination.
func (e *Engine) Search(req Request) (*Response, error) {
	applied := e.normalize(req)

	// 1. Scoring textuel sur le catalogue.
	type scored struct {
		product models.Product
		score   int
	}
	terms := strings.Fields(strings.ToLower(applied.Query))
	var candidates []scored
	for _, p := range e.catalog {
		score := relevanceScore(p, terms)
		if score == 0 {
			continue
		}
		// 2. Restriction catégorie / enseigne (comparaison normalisée).
		if applied.Category != "" && !strings.EqualFold(p.Category, applied.Category) {
			continue
		}
		if applied.Retailer != "" && !carriedByFold(p, applied.Retailer) {
			continue
		}
		candidates = append(candidates, scored{product: p, score: score})
	}

	// 3. Magasins dans le rayon : préfiltre bounding box + coupure Haversine
	// exacte, délégués au provider.
	storeFilter := inventory.StoreFilter{Retailer: applied.Retailer}
	nearby, err := e.provider.StoresNear(applied.Location.Lat, applied.Location.Lng,
		applied.RadiusMiles, storeFilter)
	if err != nil {
		return nil, fmt.Errorf("magasins à proximité: %w", err)
	}

	nearSet := make(map[string]struct{}, len(nearby))
	nearByID := make(map[string]geo.Nearby[models.Store], len(nearby))
	for _, n := range nearby {
		nearSet[n.Item.ID] = struct{}{}
		nearByID[n.Item.ID] = n
	}

	// 4 + 5 + 6. Agrégation par produit : enregistrements des magasins du
	// rayon, bornes de prix par produit, meilleur prix et magasin le plus
	// proche, lien d'achat.
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		records, err := e.provider.InventoryForStores(nearSet, c.product.SKU)
		if err != nil {
			return nil, fmt.Errorf("inventaire produit %s: %w", c.product.SKU, err)
		}

		var surviving []models.InventoryRecord
		for _, r := range records {
			if applied.InStockOnly && !r.InStock {
				continue
			}
			// Bornes de prix par produit : il survit si au moins un
			// enregistrement du rayon les satisfait.
			if applied.MinPrice != nil && r.Price < *applied.MinPrice {
				continue
			}
			if applied.MaxPrice != nil && r.Price > *applied.MaxPrice {
				continue
			}
			surviving = append(surviving, r)
		}
		if len(surviving) == 0 {
			continue
		}

		res := e.shapeResult(c.product, c.score, surviving, nearByID)
		results = append(results, res)
	}

	// 7. Tri multi-critères.
	sortResults(results, applied.SortBy, applied.SortOrder)

	// 8. Pagination après tri.
	total := len(results)
	totalPages := 0
	if total > 0 {
		totalPages = (total + applied.limit - 1) / applied.limit
	}
	start := (applied.page - 1) * applied.limit
	end := start + applied.limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Response{
		Results: results[start:end],
		Pagination: Pagination{
			Page:         applied.page,
			Limit:        applied.limit,
			TotalResults: total,
			TotalPages:   totalPages,
		},
		Filters: applied.Applied,
	}, nil
}

// normalized regroupe la requête clampée et les valeurs annexes de pagination.
type normalized struct {
	Applied
	page  int
	limit int
}

func (e *Engine) normalize(req Request) normalized {
	n := normalized{}
	n.Query = strings.TrimSpace(req.Query)

	// Localisation absente ou invalide → défaut configuré. Une localisation
	// est toujours requise en aval, jamais optionnelle à ce niveau.
	loc := Location{Lat: e.cfg.DefaultLat, Lng: e.cfg.DefaultLng}
	if req.Location != nil && validLocation(*req.Location) {
		loc = *req.Location
	}
	n.Location = loc

	radius := e.cfg.DefaultRadiusMiles
	if req.RadiusMiles != nil && *req.RadiusMiles >= 0 && !math.IsNaN(*req.RadiusMiles) {
		radius = *req.RadiusMiles
	}
	if radius > e.cfg.MaxRadiusMiles {
		radius = e.cfg.MaxRadiusMiles // clampé, pas rejeté
	}
	n.RadiusMiles = radius

	n.Category = strings.TrimSpace(req.Category)
	n.Retailer = strings.TrimSpace(req.Retailer)
	n.MinPrice = req.MinPrice
	n.MaxPrice = req.MaxPrice

	n.InStockOnly = true
	if req.InStockOnly != nil {
		n.InStockOnly = *req.InStockOnly
	}

	switch strings.ToLower(req.SortBy) {
	case "price", "distance", "name", "relevance":
		n.SortBy = strings.ToLower(req.SortBy)
	default:
		n.SortBy = "relevance" // sortBy inconnu → pertinence
	}
	if strings.ToLower(req.SortOrder) == "desc" {
		n.SortOrder = "desc"
	} else {
		n.SortOrder = "asc"
	}

	n.page = req.Page
	if n.page < 1 {
		n.page = 1
	}
	n.limit = req.Limit
	if n.limit < 1 {
		n.limit = e.cfg.DefaultLimit
	}
	if n.limit > e.cfg.MaxLimit {
		n.limit = e.cfg.MaxLimit
	}
	return n
}

func validLocation(l Location) bool {
	return !math.IsNaN(l.Lat) && !math.IsNaN(l.Lng) &&
		l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

// relevanceScore applique la pondération 3/2/1 : nom ×3, mots-clés ×2,
// catégorie ×1, par terme trouvé en sous-chaîne. Requête vide → score 1 pour
// tout le catalogue (le tri pertinence devient l'ordre catalogue stable).
func relevanceScore(p models.Product, terms []string) int {
	if len(terms) == 0 {
		return 1
	}
	name := strings.ToLower(p.Name)
	category := strings.ToLower(p.Category)

	score := 0
	for _, term := range terms {
		if strings.Contains(name, term) {
			score += 3
		}
		for _, kw := range p.Keywords {
			if strings.Contains(strings.ToLower(kw), term) {
				score += 2
				break
			}
		}
		if strings.Contains(category, term) {
			score += 1
		}
	}
	return score
}

func carriedByFold(p models.Product, retailer string) bool {
	for _, r := range p.Retailers {
		if strings.EqualFold(r, retailer) {
			return true
		}
	}
	return false
}

// shapeResult choisit le meilleur prix et le magasin le plus proche parmi les
// enregistrements survivants. Les deux sélections sont indépendantes : le
// plus proche n'est pas forcément le moins cher. Les égalités se départagent
// sur l'ID magasin (clé stable), pas sur l'ordre d'arrivée.
func (e *Engine) shapeResult(p models.Product, score int, records []models.InventoryRecord, nearByID map[string]geo.Nearby[models.Store]) Result {
	offers := make([]StoreOffer, 0, len(records))
	for _, r := range records {
		n, ok := nearByID[r.StoreID]
		if !ok {
			continue // enregistrement orphelin d'un magasin hors rayon
		}
		offers = append(offers, StoreOffer{
			StoreID:       r.StoreID,
			Retailer:      r.RetailerKey,
			StoreName:     n.Item.Name,
			Address:       n.Item.Address,
			Price:         r.Price,
			Quantity:      r.Quantity,
			InStock:       r.InStock,
			DistanceMiles: n.DistanceMiles,
			PurchaseURL:   e.links.PurchaseURL(r.RetailerKey, p.Name, p.Brand),
			Delivery:      geo.EstimateDeliveryTime(n.DistanceMiles),
		})
	}

	// Distance croissante, égalités sur l'ID magasin : déterministe quel que
	// soit l'ordre d'exécution.
	sort.SliceStable(offers, func(i, j int) bool {
		if offers[i].DistanceMiles != offers[j].DistanceMiles {
			return offers[i].DistanceMiles < offers[j].DistanceMiles
		}
		return offers[i].StoreID < offers[j].StoreID
	})

	best := offers[0].Price
	for _, o := range offers[1:] {
		if o.Price < best { // strictement inférieur : le premier minimum gagne
			best = o.Price
		}
	}

	stores := make(map[string]struct{}, len(offers))
	for _, o := range offers {
		stores[o.StoreID] = struct{}{}
	}

	nearest := offers[0]
	others := offers[1:]
	if len(others) > e.cfg.MaxOtherStores {
		others = others[:e.cfg.MaxOtherStores]
	}

	return Result{
		SKU:          p.SKU,
		Name:         p.Name,
		Brand:        p.Brand,
		Category:     p.Category,
		BasePrice:    p.BasePrice,
		BestPrice:    best,
		StoreCount:   len(stores),
		NearestStore: &nearest,
		OtherStores:  others,
		Score:        score,
	}
}

func sortResults(results []Result, sortBy, sortOrder string) {
	desc := sortOrder == "desc"

	switch sortBy {
	case "price":
		sort.SliceStable(results, func(i, j int) bool {
			if desc {
				return results[i].BestPrice > results[j].BestPrice
			}
			return results[i].BestPrice < results[j].BestPrice
		})
	case "distance":
		sort.SliceStable(results, func(i, j int) bool {
			di, dj := nearestDistance(results[i]), nearestDistance(results[j])
			if desc {
				return di > dj
			}
			return di < dj
		})
	case "name":
		sort.SliceStable(results, func(i, j int) bool {
			if desc {
				return results[i].Name > results[j].Name
			}
			return results[i].Name < results[j].Name
		})
	default:
		// Pertinence : toujours décroissante, le sortOrder est ignoré.
		// Comportement de référence conservé tel quel, ne pas "corriger".
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}
}

// nearestDistance traite l'absence de distance comme +∞ (dernier en tri
// croissant).
func nearestDistance(r Result) float64 {
	if r.NearestStore == nil {
		return math.Inf(1)
	}
	return r.NearestStore.DistanceMiles
}
