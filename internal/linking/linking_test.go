package linking_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proxi_back_end/internal/linking"
)

func TestPurchaseURLSubstitution(t *testing.T) {
	g := linking.NewGenerator(nil)

	u := g.PurchaseURL("walmart", "Cordless Drill", "")
	assert.Equal(t, "https://www.walmart.com/search?q=Cordless+Drill", u)
}

func TestPurchaseURLPrependsBrand(t *testing.T) {
	g := linking.NewGenerator(nil)

	u := g.PurchaseURL("target", "Cordless Drill", "DeWalt")
	assert.Contains(t, u, "DeWalt+Cordless+Drill")

	// La marque déjà présente dans le nom n'est pas doublée.
	u = g.PurchaseURL("target", "DeWalt Cordless Drill", "DeWalt")
	assert.Contains(t, u, "DeWalt+Cordless+Drill")
	assert.NotContains(t, u, "DeWalt+DeWalt")
}

func TestPurchaseURLUnknownRetailer(t *testing.T) {
	g := linking.NewGenerator(nil)
	assert.Equal(t, "", g.PurchaseURL("inconnu", "Drill", ""))
}

func TestPurchaseURLCaseInsensitiveKey(t *testing.T) {
	g := linking.NewGenerator(nil)
	assert.NotEqual(t, "", g.PurchaseURL("WalMart", "Drill", ""))
}

func TestExtraTemplates(t *testing.T) {
	g := linking.NewGenerator(map[string]string{
		"quincaillerie-locale": "https://quincaillerie.example/find?p={query}",
	})
	u := g.PurchaseURL("quincaillerie-locale", "Marteau", "")
	assert.Equal(t, "https://quincaillerie.example/find?p=Marteau", u)
}

func TestQRPNG(t *testing.T) {
	g := linking.NewGenerator(nil)
	png, err := g.QRPNG("https://www.walmart.com/search?q=drill")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// Signature PNG.
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}
