package library

import (
	"errors"
	"fmt"
)

// Catalog is the in-memory list of library items, mirrored to a Store.
type Catalog struct {
	store Store
	items []*LibraryItem
}

func NewCatalog(store Store) *Catalog {
	return &Catalog{store: store}
}

// Load replaces the in-memory items with the stored ones. When nothing is
// stored the catalog is left empty and ErrNoFile is returned so the caller
// can tell the user.
func (c *Catalog) Load() error {
	items, err := c.store.LoadItems()
	if errors.Is(err, ErrNoFile) {
		c.items = nil
		return ErrNoFile
	}
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	c.items = items
	return nil
}

// Add appends item in memory and persists it right away. Ids are not
// checked for uniqueness; FindByID returns the earliest match.
func (c *Catalog) Add(item *LibraryItem) error {
	if err := c.store.AppendItem(item); err != nil {
		return fmt.Errorf("add item %d: %w", item.ID, err)
	}
	c.items = append(c.items, item)
	return nil
}

func (c *Catalog) FindByID(id int64) (*LibraryItem, bool) {
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return nil, false
}

// Items returns the catalog in insertion order.
func (c *Catalog) Items() []*LibraryItem {
	out := make([]*LibraryItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Catalog) Len() int { return len(c.items) }
