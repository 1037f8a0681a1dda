package search

import (
	"sort"
	"strings"
)

// CategoryCount est une entrée de "liste des catégories avec compteurs".
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Categories liste les catégories du catalogue avec leur nombre de produits,
// triées par nom. Pas d'étape géographique : même catalogue que la recherche.
func (e *Engine) Categories() []CategoryCount {
	counts := make(map[string]int)
	for _, p := range e.catalog {
		if p.Category == "" {
			continue
		}
		counts[strings.ToLower(p.Category)]++
	}

	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

const (
	suggestMinPrefix = 2
	suggestMax       = 10
)

// Suggest retourne jusqu'à 10 noms de produits ou mots-clés distincts
// contenant le préfixe (insensible à la casse). Préfixe de moins de 2
// caractères → aucune suggestion.
func (e *Engine) Suggest(prefix string) []string {
	p := strings.ToLower(strings.TrimSpace(prefix))
	if len(p) < suggestMinPrefix {
		return []string{}
	}

	seen := make(map[string]struct{})
	out := make([]string, 0, suggestMax)

	add := func(s string) bool {
		key := strings.ToLower(s)
		if _, dup := seen[key]; dup {
			return len(out) < suggestMax
		}
		seen[key] = struct{}{}
		out = append(out, s)
		return len(out) < suggestMax
	}

	for _, prod := range e.catalog {
		if strings.Contains(strings.ToLower(prod.Name), p) {
			if !add(prod.Name) {
				return out
			}
		}
		for _, kw := range prod.Keywords {
			if strings.Contains(strings.ToLower(kw), p) {
				if !add(kw) {
					return out
				}
			}
		}
	}
	return out
}
