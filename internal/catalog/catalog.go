// Package catalog owns the static trek table supplied to the core at process
// start. The catalog is immutable: it is loaded once and only ever read.
package catalog

import "github.com/trekmate/trekmate-core/internal/types"

// Catalog is the read-only trek table.
type Catalog struct {
	treks []types.Trek
}

// Load returns the built-in catalog.
func Load() *Catalog {
	return &Catalog{treks: sampleTreks}
}

// FromTreks builds a catalog from an explicit table, mainly for tests.
func FromTreks(treks []types.Trek) *Catalog {
	return &Catalog{treks: treks}
}

// Treks returns the catalog entries in stable catalog order. The returned
// slice is a copy; callers may reorder it freely.
func (c *Catalog) Treks() []types.Trek {
	out := make([]types.Trek, len(c.treks))
	copy(out, c.treks)
	return out
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.treks)
}

// ByID looks a trek up by its catalog id.
func (c *Catalog) ByID(id int) (types.Trek, bool) {
	for _, t := range c.treks {
		if t.ID == id {
			return t, true
		}
	}
	return types.Trek{}, false
}

// Regions returns the distinct region names in catalog order.
func (c *Catalog) Regions() []string {
	seen := make(map[string]bool, len(c.treks))
	var regions []string
	for _, t := range c.treks {
		if t.Region == "" || seen[t.Region] {
			continue
		}
		seen[t.Region] = true
		regions = append(regions, t.Region)
	}
	return regions
}
