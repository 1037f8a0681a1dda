package search_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proxi_back_end/internal/inventory"
	"proxi_back_end/internal/linking"
	"proxi_back_end/internal/models"
	"proxi_back_end/internal/search"
)

func TestCategoriesWithCounts(t *testing.T) {
	e := newEngine(t)
	cats := e.Categories()
	require.Len(t, cats, 3)

	// Triées par nom.
	assert.Equal(t, "appliances", cats[0].Name)
	assert.Equal(t, 1, cats[0].Count)
	assert.Equal(t, "electrical", cats[1].Name)
	assert.Equal(t, 1, cats[1].Count)
	assert.Equal(t, "hardware", cats[2].Name)
	assert.Equal(t, 2, cats[2].Count)
}

func TestSuggestMinPrefix(t *testing.T) {
	e := newEngine(t)
	assert.Empty(t, e.Suggest("d"), "préfixe < 2 caractères : rien")
	assert.Empty(t, e.Suggest(" "))
}

func TestSuggestMatchesNamesAndKeywords(t *testing.T) {
	e := newEngine(t)
	got := e.Suggest("drill")
	require.NotEmpty(t, got)
	assert.Contains(t, got, "DeWalt Cordless Drill")
	assert.Contains(t, got, "drill")
}

func TestSuggestCaseInsensitive(t *testing.T) {
	e := newEngine(t)
	assert.Equal(t, e.Suggest("CORD"), e.Suggest("cord"))
}

func TestSuggestDistinct(t *testing.T) {
	e := newEngine(t)
	got := e.Suggest("cordless")
	seen := map[string]int{}
	for _, s := range got {
		seen[s]++
	}
	for s, n := range seen {
		assert.Equal(t, 1, n, "suggestion %q dupliquée", s)
	}
}

func TestSuggestCapAtTen(t *testing.T) {
	// Catalogue gonflé : beaucoup de noms contenant le même préfixe.
	var catalog []models.Product
	for i := 0; i < 30; i++ {
		catalog = append(catalog, models.Product{
			SKU:      fmt.Sprintf("SCR-%03d", i),
			Name:     fmt.Sprintf("Screwdriver Model %d", i),
			Category: "hardware",
			Keywords: []string{"screwdriver"},
		})
	}
	ix := inventory.NewIndex()
	ix.Load(nil, nil)
	e := search.NewEngine(catalog, ix, linking.NewGenerator(nil), search.DefaultConfig())

	got := e.Suggest("screw")
	assert.Len(t, got, 10)
}
