// Package geo regroupe les calculs de localisation : distance grand cercle,
// bounding box et filtrage de proximité. Aucune dépendance au stockage.
//
// Précondition documentée : les coordonnées doivent être valides (pas de NaN,
// lat ∈ [-90,90], lng ∈ [-180,180]). Des entrées invalides se propagent en
// NaN/résultats vides au lieu de paniquer — c'est à l'appelant de valider.
package geo

import (
	"math"
	"sort"
)

const (
	// Rayon terrestre en miles pour la formule de Haversine.
	EarthRadiusMiles = 3959.0

	// 1° de latitude ≈ 69 miles (approximation pour la bounding box).
	milesPerDegreeLat = 69.0
)

// Located est porté par tout enregistrement géolocalisé (magasin, entrepôt…).
type Located interface {
	Coordinates() (lat, lng float64)
}

// Nearby associe un candidat à sa distance exacte du point de requête.
type Nearby[T Located] struct {
	Item          T       `json:"item"`
	DistanceMiles float64 `json:"distance_miles"`
}

// Distance calcule la distance grand cercle (Haversine) en miles, arrondie à
// une décimale. L'arrondi se fait ici et nulle part ailleurs : les tests de
// reproductibilité en dépendent.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLng := toRadians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(EarthRadiusMiles*c*10) / 10
}

// BoundingBox retourne le rectangle lat/lng englobant le cercle de rayon
// radiusMiles. Pré-filtre grossier uniquement : un point dans la box n'est
// pas forcément dans le cercle.
func BoundingBox(lat, lng, radiusMiles float64) (minLat, maxLat, minLng, maxLng float64) {
	dLat := radiusMiles / milesPerDegreeLat

	// cos(lat) tend vers 0 aux pôles ; clamp défensif pour éviter un delta
	// de longitude infini.
	cosLat := math.Cos(toRadians(lat))
	if cosLat < 0.01 {
		cosLat = 0.01
	}
	dLng := radiusMiles / (milesPerDegreeLat * cosLat)

	return lat - dLat, lat + dLat, lng - dLng, lng + dLng
}

// FindNearby filtre les candidats au rayon demandé :
//  1. bounding box (test rectangle, pas de trigonométrie pour les candidats
//     manifestement trop loin)
//  2. distance Haversine exacte pour les survivants
//  3. coupure exacte distance <= radiusMiles (borne incluse — rayon 0 garde
//     un magasin pile sur le point de requête)
//  4. tri croissant par distance, stable (les égalités gardent l'ordre
//     d'entrée)
func FindNearby[T Located](candidates []T, lat, lng, radiusMiles float64) []Nearby[T] {
	minLat, maxLat, minLng, maxLng := BoundingBox(lat, lng, radiusMiles)

	results := make([]Nearby[T], 0, len(candidates))
	for _, c := range candidates {
		cLat, cLng := c.Coordinates()
		if cLat < minLat || cLat > maxLat || cLng < minLng || cLng > maxLng {
			continue
		}
		d := Distance(lat, lng, cLat, cLng)
		if d > radiusMiles || math.IsNaN(d) {
			continue
		}
		results = append(results, Nearby[T]{Item: c, DistanceMiles: d})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].DistanceMiles < results[j].DistanceMiles
	})
	return results
}

// DeliveryEstimate donne les fenêtres estimées de retrait et de livraison.
type DeliveryEstimate struct {
	Pickup   string `json:"pickup"`
	Delivery string `json:"delivery"`
}

// EstimateDeliveryTime est une table de correspondance pure par tranches de
// distance. Totale sur toutes les distances positives.
func EstimateDeliveryTime(distanceMiles float64) DeliveryEstimate {
	switch {
	case distanceMiles <= 2:
		return DeliveryEstimate{Pickup: "10-15 min", Delivery: "15-25 min"}
	case distanceMiles <= 5:
		return DeliveryEstimate{Pickup: "15-25 min", Delivery: "25-35 min"}
	case distanceMiles <= 10:
		return DeliveryEstimate{Pickup: "20-30 min", Delivery: "35-50 min"}
	case distanceMiles <= 20:
		return DeliveryEstimate{Pickup: "30-45 min", Delivery: "50-75 min"}
	default:
		return DeliveryEstimate{Pickup: "45-60 min", Delivery: "75-90 min"}
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
