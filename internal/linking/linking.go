// Package linking génère les liens d'achat profonds vers les sites des
// enseignes (substitution de gabarit) et leur version QR pour le retrait en
// magasin.
package linking

import (
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// Gabarits par enseigne : {query} est remplacé par le nom du produit encodé.
var defaultTemplates = map[string]string{
	"walmart":     "https://www.walmart.com/search?q={query}",
	"target":      "https://www.target.com/s?searchTerm={query}",
	"homedepot":   "https://www.homedepot.com/s/{query}",
	"bestbuy":     "https://www.bestbuy.com/site/searchpage.jsp?st={query}",
	"acehardware": "https://www.acehardware.com/search?query={query}",
	"cvs":         "https://www.cvs.com/search?searchTerm={query}",
}

type Generator struct {
	templates map[string]string
}

// NewGenerator construit le générateur avec les gabarits par défaut,
// éventuellement surchargés ou complétés par extra.
func NewGenerator(extra map[string]string) *Generator {
	t := make(map[string]string, len(defaultTemplates)+len(extra))
	for k, v := range defaultTemplates {
		t[k] = v
	}
	for k, v := range extra {
		t[strings.ToLower(k)] = v
	}
	return &Generator{templates: t}
}

// PurchaseURL retourne l'URL d'achat chez l'enseigne pour un produit, ou ""
// si l'enseigne est inconnue du registre de gabarits.
func (g *Generator) PurchaseURL(retailerKey, productName, brand string) string {
	tmpl, ok := g.templates[strings.ToLower(retailerKey)]
	if !ok {
		return ""
	}

	query := strings.TrimSpace(productName)
	if brand != "" && !strings.Contains(strings.ToLower(query), strings.ToLower(brand)) {
		query = brand + " " + query
	}
	return strings.ReplaceAll(tmpl, "{query}", url.QueryEscape(query))
}

// QRPNG encode une URL d'achat en PNG (handoff mobile au comptoir retrait).
func (g *Generator) QRPNG(link string) ([]byte, error) {
	return qrcode.Encode(link, qrcode.Medium, 256)
}
