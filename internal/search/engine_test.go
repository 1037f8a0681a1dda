package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proxi_back_end/internal/inventory"
	"proxi_back_end/internal/linking"
	"proxi_back_end/internal/models"
	"proxi_back_end/internal/search"
)

// Point de requête : Brooklyn.
const (
	queryLat = 40.6892
	queryLng = -73.9857
)

func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func testCatalog() []models.Product {
	return []models.Product{
		{SKU: "DRL-100", Name: "DeWalt Cordless Drill", Brand: "DeWalt", Category: "hardware", BasePrice: 129.99,
			Keywords: []string{"drill", "cordless"}, Retailers: []string{"walmart", "target", "homedepot"}},
		{SKU: "HAM-200", Name: "Stanley Claw Hammer", Brand: "Stanley", Category: "hardware", BasePrice: 19.99,
			Keywords: []string{"hammer", "tools"}, Retailers: []string{"walmart", "acehardware"}},
		{SKU: "VAC-300", Name: "Dyson Cordless Vacuum", Brand: "Dyson", Category: "appliances", BasePrice: 399.00,
			Keywords: []string{"vacuum", "cordless"}, Retailers: []string{"target", "bestbuy"}},
		{SKU: "LED-400", Name: "Philips LED Bulb 4-Pack", Brand: "Philips", Category: "electrical", BasePrice: 12.49,
			Keywords: []string{"bulb", "light", "led"}, Retailers: []string{"walmart", "homedepot"}},
	}
}

func testStores() []models.Store {
	return []models.Store{
		{ID: "wm-001", RetailerKey: "walmart", Name: "Walmart Downtown Brooklyn", Address: "1 Flatbush Ave", City: "Brooklyn", State: "NY", Latitude: 40.6930, Longitude: -73.9870},
		{ID: "tg-001", RetailerKey: "target", Name: "Target Atlantic Terminal", Address: "139 Flatbush Ave", City: "Brooklyn", State: "NY", Latitude: 40.6845, Longitude: -73.9780},
		{ID: "hd-001", RetailerKey: "homedepot", Name: "Home Depot Northern Blvd", Address: "50-10 Northern Blvd", City: "Queens", State: "NY", Latitude: 40.7440, Longitude: -73.9190},
		{ID: "bb-001", RetailerKey: "bestbuy", Name: "Best Buy Midtown", Address: "531 5th Ave", City: "New York", State: "NY", Latitude: 40.7580, Longitude: -73.9855},
		{ID: "ah-001", RetailerKey: "acehardware", Name: "Ace Hardware Westchester", Address: "12 Main St", City: "White Plains", State: "NY", Latitude: 41.2000, Longitude: -73.7000},
	}
}

func testRecords() []models.InventoryRecord {
	return []models.InventoryRecord{
		{ID: "inv-001", StoreID: "wm-001", RetailerKey: "walmart", SKU: "DRL-100", ProductName: "DeWalt Cordless Drill", Price: 129.99, Quantity: 4, Category: "hardware"},
		{ID: "inv-002", StoreID: "tg-001", RetailerKey: "target", SKU: "DRL-100", ProductName: "DeWalt Cordless Drill", Price: 124.50, Quantity: 2, Category: "hardware"},
		{ID: "inv-003", StoreID: "hd-001", RetailerKey: "homedepot", SKU: "DRL-100", ProductName: "DeWalt Cordless Drill", Price: 119.00, Quantity: 0, Category: "hardware"},
		{ID: "inv-004", StoreID: "wm-001", RetailerKey: "walmart", SKU: "HAM-200", ProductName: "Stanley Claw Hammer", Price: 18.75, Quantity: 12, Category: "hardware"},
		{ID: "inv-005", StoreID: "ah-001", RetailerKey: "acehardware", SKU: "HAM-200", ProductName: "Stanley Claw Hammer", Price: 15.99, Quantity: 6, Category: "hardware"},
		{ID: "inv-006", StoreID: "tg-001", RetailerKey: "target", SKU: "VAC-300", ProductName: "Dyson Cordless Vacuum", Price: 389.99, Quantity: 3, Category: "appliances"},
		{ID: "inv-007", StoreID: "bb-001", RetailerKey: "bestbuy", SKU: "VAC-300", ProductName: "Dyson Cordless Vacuum", Price: 379.00, Quantity: 1, Category: "appliances"},
		{ID: "inv-008", StoreID: "wm-001", RetailerKey: "walmart", SKU: "LED-400", ProductName: "Philips LED Bulb 4-Pack", Price: 11.99, Quantity: 30, Category: "electrical"},
	}
}

func newEngine(t *testing.T) *search.Engine {
	t.Helper()
	ix := inventory.NewIndex()
	ix.Load(testStores(), testRecords())

	cfg := search.DefaultConfig()
	cfg.DefaultLat = queryLat
	cfg.DefaultLng = queryLng
	return search.NewEngine(testCatalog(), ix, linking.NewGenerator(nil), cfg)
}

func searchReq(query string) search.Request {
	return search.Request{
		Query:       query,
		Location:    &search.Location{Lat: queryLat, Lng: queryLng},
		RadiusMiles: floatPtr(10),
	}
}

// ── Scoring ─────────────────────────────────────────────────────────────────

func TestRelevanceScoreSingleTerm(t *testing.T) {
	e := newEngine(t)
	resp, err := e.Search(searchReq("drill"))
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	// nom ×3 + mot-clé ×2, la catégorie "hardware" ne contient pas "drill".
	assert.Equal(t, "DRL-100", resp.Results[0].SKU)
	assert.Equal(t, 5, resp.Results[0].Score)
}

func TestRelevanceScoreMultiTerm(t *testing.T) {
	e := newEngine(t)
	resp, err := e.Search(searchReq("cordless drill"))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)

	// "cordless" et "drill" dans le nom (3+3) et dans les mots-clés (2+2).
	assert.Equal(t, "DRL-100", resp.Results[0].SKU)
	assert.Equal(t, 10, resp.Results[0].Score)
}

func TestRelevanceScoreCategoryTerm(t *testing.T) {
	e := newEngine(t)
	resp, err := e.Search(searchReq("hardware"))
	require.NoError(t, err)

	for _, r := range resp.Results {
		assert.Equal(t, "hardware", r.Category)
		assert.Equal(t, 1, r.Score, "seule la catégorie matche : ×1")
	}
}

func TestEmptyQueryScoresOne(t *testing.T) {
	e := newEngine(t)
	resp, err := e.Search(searchReq(""))
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
	for _, r := range resp.Results {
		assert.Equal(t, 1, r.Score)
	}
}

func TestZeroScoreExcluded(t *testing.T) {
	e := newEngine(t)
	resp, err := e.Search(searchReq("tondeuse"))
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Pagination.TotalResults)
}

// ── Géo ─────────────────────────────────────────────────────────────────────

func TestEmptyCatalogRegion(t *testing.T) {
	// Recherche en plein océan : réponse vide, pas une erreur.
	e := newEngine(t)
	resp, err := e.Search(search.Request{
		Query:       "drill",
		Location:    &search.Location{Lat: 0, Lng: 0},
		RadiusMiles: floatPtr(10),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.Pagination.TotalResults)
	assert.Equal(t, 0, resp.Pagination.TotalPages)
}

func TestRadiusZeroInclusive(t *testing.T) {
	// Magasin pile sur le point de requête : inclus avec rayon 0.
	ix := inventory.NewIndex()
	ix.Load(
		[]models.Store{{ID: "wm-000", RetailerKey: "walmart", Name: "Walmart Sur Place", Latitude: queryLat, Longitude: queryLng}},
		[]models.InventoryRecord{{ID: "inv-100", StoreID: "wm-000", RetailerKey: "walmart", SKU: "DRL-100", Price: 99.99, Quantity: 1}},
	)
	cfg := search.DefaultConfig()
	e := search.NewEngine(testCatalog(), ix, linking.NewGenerator(nil), cfg)

	resp, err := e.Search(search.Request{
		Query:       "drill",
		Location:    &search.Location{Lat: queryLat, Lng: queryLng},
		RadiusMiles: floatPtr(0),
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 0.0, resp.Results[0].NearestStore.DistanceMiles)
}

func TestRadiusClampedToMax(t *testing.T) {
	e := newEngine(t)
	resp, err := e.Search(search.Request{
		Query:       "hammer",
		Location:    &search.Location{Lat: queryLat, Lng: queryLng},
		RadiusMiles: floatPtr(500),
	})
	require.NoError(t, err)
	assert.Equal(t, 50.0, resp.Filters.RadiusMiles, "rayon clampé au max configuré, pas rejeté")
	// Le Ace Hardware à ~37 mi entre dans le rayon clampé.
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 2, resp.Results[0].StoreCount)
}

func TestMissingLocationFallsBack(t *testing.T) {
	e := newEngine(t)
	resp, err := e.Search(search.Request{Query: "drill", RadiusMiles: floatPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, queryLat, resp.Filters.Location.Lat)
	assert.NotEmpty(t, resp.Results, "la localisation par défaut doit servir")
}

// ── Agrégation par produit ──────────────────────────────────────────────────

func TestBestPriceAndNearestAreIndependent(t *testing.T) {
	e := newEngine(t)
	resp, err := e.Search(searchReq("drill"))
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	r := resp.Results[0]
	// hd-001 (119.00) est hors stock ; le meilleur prix vient de tg-001.
	assert.Equal(t, 124.50, r.BestPrice)
	// Le plus proche reste wm-001 même s'il est plus cher.
	assert.Equal(t, "wm-001", r.NearestStore.StoreID)
	assert.Equal(t, 129.99, r.NearestStore.Price)
	assert.Equal(t, 2, r.StoreCount, "hd-001 hors stock n'est pas compté")
}

func TestInStockOnlyDisabled(t *testing.T) {
	e := newEngine(t)
	req := searchReq("drill")
	req.InStockOnly = boolPtr(false)
	resp, err := e.Search(req)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)

	r := resp.Results[0]
	assert.Equal(t, 3, r.StoreCount)
	assert.Equal(t, 119.00, r.BestPrice, "hors stock inclus, hd-001 devient le meilleur prix")
}

func TestPriceBoundsPerProduct(t *testing.T) {
	e := newEngine(t)
	req := searchReq("")
	req.MinPrice = floatPtr(100)
	req.MaxPrice = floatPtr(130)
	resp, err := e.Search(req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)

	for _, r := range resp.Results {
		assert.GreaterOrEqual(t, r.BestPrice, 100.0)
		assert.LessOrEqual(t, r.BestPrice, 130.0)
		assert.Equal(t, "DRL-100", r.SKU, "seul le produit avec un enregistrement dans les bornes survit")
	}
}

func TestPurchaseLinkGenerated(t *testing.T) {
	e := newEngine(t)
	resp, err := e.Search(searchReq("drill"))
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Contains(t, resp.Results[0].NearestStore.PurchaseURL, "walmart.com")
	assert.NotEmpty(t, resp.Results[0].NearestStore.Delivery.Pickup)
}

func TestNearestTieBrokenByStoreID(t *testing.T) {
	// Deux magasins équidistants : sélection déterministe par ID croissant.
	stores := []models.Store{
		{ID: "zz-001", RetailerKey: "walmart", Name: "Nord", Latitude: queryLat + 0.03, Longitude: queryLng},
		{ID: "aa-002", RetailerKey: "walmart", Name: "Sud", Latitude: queryLat - 0.03, Longitude: queryLng},
	}
	records := []models.InventoryRecord{
		{ID: "inv-z", StoreID: "zz-001", RetailerKey: "walmart", SKU: "DRL-100", Price: 120, Quantity: 1},
		{ID: "inv-a", StoreID: "aa-002", RetailerKey: "walmart", SKU: "DRL-100", Price: 125, Quantity: 1},
	}

	for i := 0; i < 5; i++ {
		ix := inventory.NewIndex()
		ix.Load(stores, records)
		e := search.NewEngine(testCatalog(), ix, linking.NewGenerator(nil), search.DefaultConfig())

		resp, err := e.Search(searchReq("drill"))
		require.NoError(t, err)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, "aa-002", resp.Results[0].NearestStore.StoreID,
			"l'égalité de distance se départage sur l'ID magasin")
	}
}

// ── Filtres catégorie / enseigne ────────────────────────────────────────────

func TestCategoryFilter(t *testing.T) {
	e := newEngine(t)
	req := searchReq("")
	req.Category = "Appliances" // casse différente volontairement
	resp, err := e.Search(req)
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "VAC-300", resp.Results[0].SKU)
}

func TestRetailerFilter(t *testing.T) {
	e := newEngine(t)
	req := searchReq("")
	req.Retailer = "walmart"
	resp, err := e.Search(req)
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)
	for _, r := range resp.Results {
		assert.Equal(t, "walmart", r.NearestStore.Retailer)
	}
}

// ── Tri ─────────────────────────────────────────────────────────────────────

func TestSortByPrice(t *testing.T) {
	e := newEngine(t)
	req := searchReq("")
	req.SortBy = "price"
	resp, err := e.Search(req)
	require.NoError(t, err)
	require.True(t, len(resp.Results) >= 2)
	for i := 1; i < len(resp.Results); i++ {
		assert.LessOrEqual(t, resp.Results[i-1].BestPrice, resp.Results[i].BestPrice)
	}

	req.SortOrder = "desc"
	resp, err = e.Search(req)
	require.NoError(t, err)
	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].BestPrice, resp.Results[i].BestPrice)
	}
}

func TestSortByDistance(t *testing.T) {
	e := newEngine(t)
	req := searchReq("")
	req.SortBy = "distance"
	resp, err := e.Search(req)
	require.NoError(t, err)
	for i := 1; i < len(resp.Results); i++ {
		assert.LessOrEqual(t,
			resp.Results[i-1].NearestStore.DistanceMiles,
			resp.Results[i].NearestStore.DistanceMiles)
	}
}

func TestSortByName(t *testing.T) {
	e := newEngine(t)
	req := searchReq("")
	req.SortBy = "name"
	resp, err := e.Search(req)
	require.NoError(t, err)
	for i := 1; i < len(resp.Results); i++ {
		assert.LessOrEqual(t, resp.Results[i-1].Name, resp.Results[i].Name)
	}
}

func TestRelevanceIgnoresSortOrder(t *testing.T) {
	// Comportement de référence : la pertinence trie toujours en décroissant,
	// quel que soit sortOrder.
	e := newEngine(t)
	req := searchReq("cordless")
	req.SortBy = "relevance"
	req.SortOrder = "asc"
	resp, err := e.Search(req)
	require.NoError(t, err)
	require.True(t, len(resp.Results) >= 2)
	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].Score, resp.Results[i].Score)
	}
}

func TestUnknownSortByFallsBackToRelevance(t *testing.T) {
	e := newEngine(t)
	req := searchReq("cordless")
	req.SortBy = "popularity"
	resp, err := e.Search(req)
	require.NoError(t, err)
	assert.Equal(t, "relevance", resp.Filters.SortBy)
}

func TestSortStability(t *testing.T) {
	e := newEngine(t)
	req := searchReq("")
	req.SortBy = "relevance" // tous à score 1 : l'ordre catalogue doit tenir
	first, err := e.Search(req)
	require.NoError(t, err)
	second, err := e.Search(req)
	require.NoError(t, err)
	assert.Equal(t, first.Results, second.Results)
}

// ── Pagination ──────────────────────────────────────────────────────────────

func TestPaginationCompleteness(t *testing.T) {
	e := newEngine(t)
	req := searchReq("")
	full, err := e.Search(req)
	require.NoError(t, err)
	total := full.Pagination.TotalResults
	require.True(t, total >= 3)

	req.Limit = 2
	var collected []string
	page := 1
	for {
		req.Page = page
		resp, err := e.Search(req)
		require.NoError(t, err)
		assert.Equal(t, total, resp.Pagination.TotalResults)
		for _, r := range resp.Results {
			collected = append(collected, r.SKU)
		}
		if page >= resp.Pagination.TotalPages {
			break
		}
		page++
	}

	// La concaténation des pages reproduit la liste complète, sans doublon
	// ni omission.
	require.Len(t, collected, total)
	var expected []string
	for _, r := range full.Results {
		expected = append(expected, r.SKU)
	}
	assert.Equal(t, expected, collected)
}

func TestPageBeyondEnd(t *testing.T) {
	e := newEngine(t)
	req := searchReq("drill")
	req.Page = 99
	resp, err := e.Search(req)
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 1, resp.Pagination.TotalResults)
}

func TestLimitClamped(t *testing.T) {
	e := newEngine(t)
	req := searchReq("")
	req.Limit = 5000
	resp, err := e.Search(req)
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Pagination.Limit)
}

// ── Erreurs provider ────────────────────────────────────────────────────────

func TestProviderFailurePropagates(t *testing.T) {
	// Index jamais chargé : l'échec doit remonter en erreur, pas en réponse
	// vide-mais-réussie.
	ix := inventory.NewIndex()
	e := search.NewEngine(testCatalog(), ix, linking.NewGenerator(nil), search.DefaultConfig())

	_, err := e.Search(searchReq("drill"))
	require.Error(t, err)
	assert.ErrorIs(t, err, inventory.ErrNotReady)
}
