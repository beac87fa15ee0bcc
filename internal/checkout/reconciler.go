package checkout

import (
	"context"
	"fmt"

	"github.com/Ackkerman111/sixseven-store/internal/catalog"
	"github.com/Ackkerman111/sixseven-store/internal/domain"
)

// Config holds the delivery surcharge policy. The storefront historically
// hard-coded these in several page variants; they are configuration here.
type Config struct {
	// FreeDeliveryThreshold is the subtotal above which delivery is free.
	FreeDeliveryThreshold float64
	// DeliveryCharge is the flat surcharge below the threshold.
	DeliveryCharge float64
}

func DefaultConfig() Config {
	return Config{
		FreeDeliveryThreshold: 999,
		DeliveryCharge:        49,
	}
}

// Line is one priced, quantified product reference in a draft.
type Line struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	LineTotal float64 `json:"line_total"`
}

// Draft is the authoritative, re-priced view of a cart immediately before
// order creation. DroppedProductIDs lists cart references that no longer
// resolve in the catalog; they are informational, never fatal.
type Draft struct {
	Lines             []Line   `json:"lines"`
	DroppedProductIDs []string `json:"dropped_product_ids"`
	Subtotal          float64  `json:"subtotal"`
	DeliveryCharge    float64  `json:"delivery_charge"`
	PayableTotal      float64  `json:"payable_total"`
}

// Reconciler re-validates and re-prices a cart against the live catalog.
type Reconciler struct {
	gateway catalog.Gateway
	cfg     Config
}

func NewReconciler(gateway catalog.Gateway, cfg Config) *Reconciler {
	return &Reconciler{
		gateway: gateway,
		cfg:     cfg,
	}
}

// Reconcile fetches current product data for every distinct product id in the
// cart with a single batch request, drops lines whose product no longer
// exists, and totals the rest from the authoritative prices. The add-time
// price snapshots on the entries are ignored. It never mutates the cart.
func (r *Reconciler) Reconcile(ctx context.Context, cart *domain.Cart) (*Draft, error) {
	draft := &Draft{
		Lines:             []Line{},
		DroppedProductIDs: []string{},
	}

	ids := cart.ProductIDs()
	if len(ids) == 0 {
		r.applyDelivery(draft)
		return draft, nil
	}

	products, err := r.gateway.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	dropped := make(map[string]struct{})
	for _, entry := range cart.Entries {
		product, ok := byID[entry.ProductID]
		if !ok {
			// Stale reference: the product was deleted since it was added.
			// Drop the line and keep going; it must not block the rest.
			if _, seen := dropped[entry.ProductID]; !seen {
				dropped[entry.ProductID] = struct{}{}
				draft.DroppedProductIDs = append(draft.DroppedProductIDs, entry.ProductID)
			}
			continue
		}

		lineTotal := product.Price * float64(entry.Quantity)
		draft.Lines = append(draft.Lines, Line{
			ProductID: product.ID,
			Name:      product.Name,
			UnitPrice: product.Price,
			Quantity:  entry.Quantity,
			LineTotal: lineTotal,
		})
		draft.Subtotal += lineTotal
	}

	r.applyDelivery(draft)
	return draft, nil
}

func (r *Reconciler) applyDelivery(draft *Draft) {
	if len(draft.Lines) == 0 {
		// Nothing to deliver, nothing to charge.
		return
	}
	if draft.Subtotal > r.cfg.FreeDeliveryThreshold {
		draft.DeliveryCharge = 0
	} else {
		draft.DeliveryCharge = r.cfg.DeliveryCharge
	}
	draft.PayableTotal = draft.Subtotal + draft.DeliveryCharge
}
