package catalog

import (
	"testing"

	"BCBSeries/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDefault(t *testing.T) *Catalog {
	t.Helper()
	c, err := Default()
	require.NoError(t, err)
	return c
}

func TestDefaultLoadsEmbeddedTable(t *testing.T) {
	c := mustDefault(t)

	assert.Greater(t, c.Len(), 150)
	for _, code := range []int{432, 433, 13522, 3698, 24364} {
		_, ok := c.Lookup(code)
		assert.True(t, ok, "indicator %d missing from catalog", code)
	}
}

func TestLookup(t *testing.T) {
	c := mustDefault(t)

	d, ok := c.Lookup(433)
	require.True(t, ok)
	assert.Equal(t, "IPCA - Variação mensal", d.Name)
	assert.Equal(t, "Inflação", d.Category)
	assert.Equal(t, "Mensal", d.Frequency)

	_, ok = c.Lookup(-7)
	assert.False(t, ok)
}

func TestSearchIgnoresAccentsAndCase(t *testing.T) {
	c := mustDefault(t)

	got := c.Search("inflacao")
	require.NotEmpty(t, got)
	for _, d := range got {
		assert.Contains(t, Normalize(d.Name+" "+d.Category), "inflacao")
	}

	upper := c.Search("INFLAÇÃO")
	assert.Equal(t, got, upper)
}

func TestSearchKeepsCatalogOrder(t *testing.T) {
	c, err := New([]models.SeriesDescriptor{
		{Code: 3, Name: "Câmbio B", Category: "Câmbio", Frequency: "Diária"},
		{Code: 1, Name: "Juros", Category: "Juros", Frequency: "Diária"},
		{Code: 2, Name: "Cambio A", Category: "Câmbio", Frequency: "Diária"},
	})
	require.NoError(t, err)

	got := c.Search("cambio")
	require.Len(t, got, 2)
	assert.Equal(t, 3, got[0].Code)
	assert.Equal(t, 2, got[1].Code)
}

func TestSearchNoMatchIsEmpty(t *testing.T) {
	c := mustDefault(t)

	got := c.Search("zzzz-nothing")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFilterByCategory(t *testing.T) {
	c := mustDefault(t)

	got := c.FilterByCategory("cambio")
	require.NotEmpty(t, got)
	for _, d := range got {
		assert.Equal(t, "Câmbio", d.Category)
	}
	// name matches do not count
	assert.Empty(t, c.FilterByCategory("selic"))
}

func TestCategoriesFirstSeenOrder(t *testing.T) {
	c := mustDefault(t)

	cats := c.Categories()
	require.NotEmpty(t, cats)
	assert.Equal(t, "Juros", cats[0])

	grouped := c.GroupByCategory()
	assert.Len(t, grouped, len(cats))
	total := 0
	for _, list := range grouped {
		total += len(list)
	}
	assert.Equal(t, c.Len(), total)
}

func TestNewRejectsDuplicates(t *testing.T) {
	_, err := New([]models.SeriesDescriptor{
		{Code: 1, Name: "a", Category: "x"},
		{Code: 1, Name: "b", Category: "x"},
	})
	assert.Error(t, err)
}

func TestParseRejectsBadYAML(t *testing.T) {
	_, err := Parse([]byte("series: [oops"))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"Inflação":            "inflacao",
		"Câmbio":              "cambio",
		"Atividade Econômica": "atividade economica",
		"PIB":                 "pib",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), in)
	}
}
