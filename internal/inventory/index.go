// Package inventory expose les opérations de lecture sur les magasins et les
// stocks sans que le moteur de recherche connaisse le stockage sous-jacent.
// L'index est chargé depuis Postgres au démarrage, puis maintenu par les
// chemins d'écriture (ingestion, commandes).
package inventory

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"proxi_back_end/internal/geo"
	"proxi_back_end/internal/models"
)

var (
	// ErrNotReady est retourné tant que Load n'a pas été appelé : un index
	// vide-car-pas-chargé doit se distinguer d'un "aucun résultat".
	ErrNotReady = errors.New("index inventaire non chargé")

	// ErrInsufficientStock est retourné quand un décrément dépasserait la
	// quantité disponible. La quantité ne devient jamais négative.
	ErrInsufficientStock = errors.New("stock insuffisant")

	ErrRecordNotFound = errors.New("enregistrement inventaire introuvable")
)

// StoreFilter restreint les magasins avant le calcul géographique (le filtre
// est bon marché et réduit le jeu de candidats).
type StoreFilter struct {
	Retailer string
	City     string
	State    string
}

// RecordFilter correspond au listing "page magasin", indépendant du ranking.
type RecordFilter struct {
	Category string
	Query    string
	MinPrice *float64
	MaxPrice *float64
}

// Index est la collection interrogeable des magasins et enregistrements
// d'inventaire. Les lectures sont des instantanés sous RWMutex ; les
// écritures (commande, ingestion) ne produisent jamais d'enregistrement
// partiel ni de quantité négative.
type Index struct {
	mu      sync.RWMutex
	loaded  bool
	stores  map[string]models.Store
	records map[string]*models.InventoryRecord
	byStore map[string][]string // storeID → record IDs
	bySKU   map[string][]string // sku → record IDs
}

func NewIndex() *Index {
	return &Index{
		stores:  make(map[string]models.Store),
		records: make(map[string]*models.InventoryRecord),
		byStore: make(map[string][]string),
		bySKU:   make(map[string][]string),
	}
}

// Load remplace tout le contenu de l'index (chargement au démarrage ou
// rechargement complet après ingestion en masse).
func (ix *Index) Load(stores []models.Store, records []models.InventoryRecord) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.stores = make(map[string]models.Store, len(stores))
	ix.records = make(map[string]*models.InventoryRecord, len(records))
	ix.byStore = make(map[string][]string)
	ix.bySKU = make(map[string][]string)

	for _, s := range stores {
		if !s.HasValidCoordinates() {
			continue // invariant §3 : on n'indexe pas un magasin mal géolocalisé
		}
		ix.stores[s.ID] = s
	}
	for i := range records {
		r := records[i]
		r.NormalizeStock()
		ix.insertLocked(&r)
	}
	ix.loaded = true
}

func (ix *Index) insertLocked(r *models.InventoryRecord) {
	ix.records[r.ID] = r
	ix.byStore[r.StoreID] = append(ix.byStore[r.StoreID], r.ID)
	if r.SKU != "" {
		ix.bySKU[r.SKU] = append(ix.bySKU[r.SKU], r.ID)
	}
}

// Store retourne un magasin par identifiant.
func (ix *Index) Store(id string) (models.Store, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	s, ok := ix.stores[id]
	return s, ok
}

// StoresNear applique le filtre optionnel puis délègue au geo.FindNearby.
func (ix *Index) StoresNear(lat, lng, radiusMiles float64, f StoreFilter) ([]geo.Nearby[models.Store], error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.loaded {
		return nil, ErrNotReady
	}

	// Ordre stable par ID pour que les égalités de distance soient
	// déterministes d'une requête à l'autre.
	ids := make([]string, 0, len(ix.stores))
	for id := range ix.stores {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	candidates := make([]models.Store, 0, len(ids))
	for _, id := range ids {
		s := ix.stores[id]
		if f.Retailer != "" && !strings.EqualFold(s.RetailerKey, f.Retailer) {
			continue
		}
		if f.City != "" && !strings.EqualFold(s.City, f.City) {
			continue
		}
		if f.State != "" && !strings.EqualFold(s.State, f.State) {
			continue
		}
		candidates = append(candidates, s)
	}

	return geo.FindNearby(candidates, lat, lng, radiusMiles), nil
}

// InventoryForStores retourne les enregistrements dont le magasin appartient
// à l'ensemble donné, éventuellement restreints à un SKU. Évite de balayer
// tout l'inventaire quand seul un sous-ensemble de produits compte.
func (ix *Index) InventoryForStores(storeIDs map[string]struct{}, sku string) ([]models.InventoryRecord, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.loaded {
		return nil, ErrNotReady
	}

	var out []models.InventoryRecord
	if sku != "" {
		ids := append([]string(nil), ix.bySKU[sku]...)
		sort.Strings(ids)
		for _, id := range ids {
			r := ix.records[id]
			if _, ok := storeIDs[r.StoreID]; ok {
				out = append(out, *r)
			}
		}
		return out, nil
	}

	storeKeys := make([]string, 0, len(storeIDs))
	for id := range storeIDs {
		storeKeys = append(storeKeys, id)
	}
	sort.Strings(storeKeys)
	for _, storeID := range storeKeys {
		ids := append([]string(nil), ix.byStore[storeID]...)
		sort.Strings(ids)
		for _, id := range ids {
			out = append(out, *ix.records[id])
		}
	}
	return out, nil
}

// InventoryForStore liste le stock d'un magasin façon "page détail", avec
// filtres catégorie / texte / bornes de prix.
func (ix *Index) InventoryForStore(storeID string, f RecordFilter) ([]models.InventoryRecord, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if !ix.loaded {
		return nil, ErrNotReady
	}

	ids := append([]string(nil), ix.byStore[storeID]...)
	sort.Strings(ids)

	query := strings.ToLower(strings.TrimSpace(f.Query))
	var out []models.InventoryRecord
	for _, id := range ids {
		r := ix.records[id]
		if f.Category != "" && !strings.EqualFold(r.Category, f.Category) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(r.ProductName), query) {
			continue
		}
		if f.MinPrice != nil && r.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && r.Price > *f.MaxPrice {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

// Upsert insère ou remplace un enregistrement (ingestion manuelle/scraper).
// Le in_stock est normalisé ici, à la frontière du provider.
func (ix *Index) Upsert(rec models.InventoryRecord) {
	rec.NormalizeStock()

	ix.mu.Lock()
	defer ix.mu.Unlock()

	if old, ok := ix.records[rec.ID]; ok {
		ix.removeLocked(old)
	}
	ix.insertLocked(&rec)
}

// Remove supprime définitivement un enregistrement (retrait explicite, hors
// flux normal).
func (ix *Index) Remove(id string) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if r, ok := ix.records[id]; ok {
		ix.removeLocked(r)
	}
}

func (ix *Index) removeLocked(r *models.InventoryRecord) {
	delete(ix.records, r.ID)
	ix.byStore[r.StoreID] = removeID(ix.byStore[r.StoreID], r.ID)
	if r.SKU != "" {
		ix.bySKU[r.SKU] = removeID(ix.bySKU[r.SKU], r.ID)
	}
}

// AdjustQuantity applique un delta (négatif au passage d'une commande,
// positif à l'annulation) et retourne l'enregistrement mis à jour. Refuse
// tout décrément qui rendrait la quantité négative.
func (ix *Index) AdjustQuantity(recordID string, delta int) (models.InventoryRecord, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	r, ok := ix.records[recordID]
	if !ok {
		return models.InventoryRecord{}, fmt.Errorf("%w: %s", ErrRecordNotFound, recordID)
	}
	if r.Quantity+delta < 0 {
		return models.InventoryRecord{}, fmt.Errorf("%w: %s (dispo %d, demandé %d)",
			ErrInsufficientStock, recordID, r.Quantity, -delta)
	}
	r.Quantity += delta
	r.NormalizeStock()
	return *r, nil
}

// Record retourne une copie de l'enregistrement demandé.
func (ix *Index) Record(id string) (models.InventoryRecord, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	r, ok := ix.records[id]
	if !ok {
		return models.InventoryRecord{}, false
	}
	return *r, true
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
