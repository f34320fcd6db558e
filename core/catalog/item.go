package catalog

import (
	"sort"
	"strings"
	"time"
)

// Placeholder is used for blank descriptive fields.
const Placeholder = "N/A"

// MasterItem is one expected stock line.
type MasterItem struct {
	Barcode     string `json:"barcode"`
	Name        string `json:"name"`
	Size        string `json:"size"`
	RackLabel   string `json:"rack"`
	ExpectedQty int    `json:"expectedQty"`
}

// InRack reports whether the item is expected in the given (uppercase) rack.
func (m MasterItem) InRack(rackID string) bool {
	return strings.ToUpper(m.RackLabel) == rackID
}

// Catalog is an immutable barcode-indexed master list.
type Catalog struct {
	items    map[string]MasterItem
	syncedAt time.Time
}

// New builds a catalog from items. Later duplicates win.
func New(items []MasterItem, syncedAt time.Time) *Catalog {
	idx := make(map[string]MasterItem, len(items))
	for _, item := range items {
		idx[item.Barcode] = item
	}
	return &Catalog{items: idx, syncedAt: syncedAt}
}

// Get looks up a barcode.
func (c *Catalog) Get(barcode string) (MasterItem, bool) {
	item, ok := c.items[barcode]
	return item, ok
}

// Len returns the number of items.
func (c *Catalog) Len() int {
	return len(c.items)
}

// SyncedAt returns when the catalog was built.
func (c *Catalog) SyncedAt() time.Time {
	return c.syncedAt
}

// Items returns every item sorted by barcode.
func (c *Catalog) Items() []MasterItem {
	return sorted(c.items, func(MasterItem) bool { return true })
}

// InRack returns the items expected in rackID, sorted by barcode.
func (c *Catalog) InRack(rackID string) []MasterItem {
	return sorted(c.items, func(m MasterItem) bool { return m.InRack(rackID) })
}

// Subset copies the items matching keep into a fresh map the caller may consume.
func (c *Catalog) Subset(keep func(MasterItem) bool) map[string]MasterItem {
	out := make(map[string]MasterItem)
	for code, item := range c.items {
		if keep(item) {
			out[code] = item
		}
	}
	return out
}

func sorted(items map[string]MasterItem, keep func(MasterItem) bool) []MasterItem {
	out := make([]MasterItem, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Barcode < out[j].Barcode
	})
	return out
}
