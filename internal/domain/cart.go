package domain

import "time"

type Cart struct {
	ID        string      `bson:"_id,omitempty" json:"-"`
	SessionID string      `bson:"session_id" json:"session_id"`
	Entries   []CartEntry `bson:"entries" json:"entries"`
	CreatedAt time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time   `bson:"updated_at" json:"updated_at"`
}

// CartEntry is one selected product variant. Name, ImageURL and UnitPrice are
// snapshots taken at add time for display; checkout re-prices every line from
// the catalog and never trusts them.
type CartEntry struct {
	ProductID string    `bson:"product_id" json:"product_id"`
	Name      string    `bson:"name" json:"name"`
	ImageURL  string    `bson:"image_url" json:"image_url"`
	UnitPrice float64   `bson:"unit_price" json:"unit_price"`
	Size      string    `bson:"size,omitempty" json:"size,omitempty"`
	Color     string    `bson:"color,omitempty" json:"color,omitempty"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

// VariantKey identifies a cart entry. Two entries with the same key are the
// same line and must be merged, never duplicated.
type VariantKey struct {
	ProductID string
	Size      string
	Color     string
}

func (e CartEntry) Key() VariantKey {
	return VariantKey{ProductID: e.ProductID, Size: e.Size, Color: e.Color}
}

// TotalQuantity is the badge count shown in the storefront header.
func (c *Cart) TotalQuantity() int {
	var total int
	for _, e := range c.Entries {
		total += e.Quantity
	}
	return total
}

// ProductIDs returns the distinct product ids in entry order.
func (c *Cart) ProductIDs() []string {
	seen := make(map[string]struct{}, len(c.Entries))
	ids := make([]string, 0, len(c.Entries))
	for _, e := range c.Entries {
		if _, ok := seen[e.ProductID]; ok {
			continue
		}
		seen[e.ProductID] = struct{}{}
		ids = append(ids, e.ProductID)
	}
	return ids
}
