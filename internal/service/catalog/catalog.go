// Package catalog is the read-only index of curated SGS series, built once
// from the embedded catalog.yaml.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"BCBSeries/internal/domain/models"
	drepo "BCBSeries/internal/domain/repository"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

type file struct {
	Series []models.SeriesDescriptor `yaml:"series"`
}

type entry struct {
	desc     models.SeriesDescriptor
	name     string
	category string
}

// Catalog is immutable after construction and safe for concurrent use.
type Catalog struct {
	entries    []entry
	index      map[int]int
	categories []string
}

var _ drepo.Catalog = (*Catalog)(nil)

// Default parses the embedded table.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Parse builds a catalog from YAML of the form `series: [{code, name, category, frequency}]`.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return New(f.Series)
}

// New indexes descriptors in the given order. Codes must be positive and unique.
func New(series []models.SeriesDescriptor) (*Catalog, error) {
	c := &Catalog{
		entries: make([]entry, 0, len(series)),
		index:   make(map[int]int, len(series)),
	}
	seen := make(map[string]bool)

	for _, d := range series {
		if d.Code <= 0 {
			return nil, fmt.Errorf("catalog: invalid code %d for %q", d.Code, d.Name)
		}
		if _, dup := c.index[d.Code]; dup {
			return nil, fmt.Errorf("catalog: duplicate code %d", d.Code)
		}
		c.index[d.Code] = len(c.entries)
		c.entries = append(c.entries, entry{
			desc:     d,
			name:     Normalize(d.Name),
			category: Normalize(d.Category),
		})
		if !seen[d.Category] {
			seen[d.Category] = true
			c.categories = append(c.categories, d.Category)
		}
	}
	return c, nil
}

// Lookup finds a series by code.
func (c *Catalog) Lookup(code int) (models.SeriesDescriptor, bool) {
	i, ok := c.index[code]
	if !ok {
		return models.SeriesDescriptor{}, false
	}
	return c.entries[i].desc, true
}

// Search matches term against name and category, ignoring case and accents.
// Results keep catalog order. No match gives an empty, non-nil slice.
func (c *Catalog) Search(term string) []models.SeriesDescriptor {
	needle := Normalize(strings.TrimSpace(term))
	out := make([]models.SeriesDescriptor, 0)
	for _, e := range c.entries {
		if strings.Contains(e.name, needle) || strings.Contains(e.category, needle) {
			out = append(out, e.desc)
		}
	}
	return out
}

// FilterByCategory applies the Search rule to the category only.
func (c *Catalog) FilterByCategory(category string) []models.SeriesDescriptor {
	needle := Normalize(strings.TrimSpace(category))
	out := make([]models.SeriesDescriptor, 0)
	for _, e := range c.entries {
		if strings.Contains(e.category, needle) {
			out = append(out, e.desc)
		}
	}
	return out
}

// All returns every descriptor in catalog order.
func (c *Catalog) All() []models.SeriesDescriptor {
	out := make([]models.SeriesDescriptor, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.desc
	}
	return out
}

// Categories returns category names in first-seen order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// GroupByCategory buckets descriptors by exact category name.
func (c *Catalog) GroupByCategory() map[string][]models.SeriesDescriptor {
	out := make(map[string][]models.SeriesDescriptor, len(c.categories))
	for _, e := range c.entries {
		out[e.desc.Category] = append(out[e.desc.Category], e.desc)
	}
	return out
}

func (c *Catalog) Len() int { return len(c.entries) }
