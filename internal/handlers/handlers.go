// Package handlers expose l'API REST. Les dépendances (moteur de recherche,
// index inventaire, générateur de liens) sont injectées une fois au démarrage
// via Setup — pas d'état mutable ambiant dans le chemin de recherche.
package handlers

import (
	"proxi_back_end/internal/inventory"
	"proxi_back_end/internal/linking"
	"proxi_back_end/internal/search"
)

var (
	searchEngine *search.Engine
	invIndex     *inventory.Index
	linkGen      *linking.Generator
)

func Setup(engine *search.Engine, index *inventory.Index, links *linking.Generator) {
	searchEngine = engine
	invIndex = index
	linkGen = links
}
