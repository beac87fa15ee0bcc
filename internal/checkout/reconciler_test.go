package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/Ackkerman111/sixseven-store/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway() *MockGateway {
	return &MockGateway{
		Products: map[string]*domain.Product{
			"A": {ID: "A", Name: "Oversized Tee", Price: 500},
			"B": {ID: "B", Name: "Cargo Pants", Price: 600},
		},
	}
}

func cartWith(entries ...domain.CartEntry) *domain.Cart {
	return &domain.Cart{SessionID: "s1", Entries: entries}
}

func TestReconcile_TotalsAboveFreeDeliveryThreshold(t *testing.T) {
	r := NewReconciler(testGateway(), DefaultConfig())

	draft, err := r.Reconcile(context.Background(), cartWith(
		domain.CartEntry{ProductID: "A", Quantity: 2},
		domain.CartEntry{ProductID: "B", Quantity: 1},
	))

	require.NoError(t, err)
	require.Len(t, draft.Lines, 2)
	assert.Equal(t, 1000.0, draft.Lines[0].LineTotal)
	assert.Equal(t, 600.0, draft.Lines[1].LineTotal)
	assert.Equal(t, 1600.0, draft.Subtotal)
	assert.Equal(t, 0.0, draft.DeliveryCharge, "1600 > 999 threshold means free delivery")
	assert.Equal(t, 1600.0, draft.PayableTotal)
	assert.Empty(t, draft.DroppedProductIDs)
}

func TestReconcile_BelowThresholdAddsDeliveryCharge(t *testing.T) {
	gateway := &MockGateway{
		Products: map[string]*domain.Product{
			"A": {ID: "A", Name: "Cap", Price: 400},
		},
	}
	r := NewReconciler(gateway, DefaultConfig())

	draft, err := r.Reconcile(context.Background(), cartWith(
		domain.CartEntry{ProductID: "A", Quantity: 1},
	))

	require.NoError(t, err)
	assert.Equal(t, 400.0, draft.Subtotal)
	assert.Equal(t, 49.0, draft.DeliveryCharge)
	assert.Equal(t, 449.0, draft.PayableTotal)
}

func TestReconcile_UsesAuthoritativePriceNotSnapshot(t *testing.T) {
	r := NewReconciler(testGateway(), DefaultConfig())

	// The entry carries a stale add-time price snapshot.
	draft, err := r.Reconcile(context.Background(), cartWith(
		domain.CartEntry{ProductID: "A", UnitPrice: 100, Quantity: 2},
		domain.CartEntry{ProductID: "B", UnitPrice: 9999, Quantity: 1},
	))

	require.NoError(t, err)
	assert.Equal(t, 500.0, draft.Lines[0].UnitPrice)
	assert.Equal(t, 600.0, draft.Lines[1].UnitPrice)
	assert.Equal(t, 1600.0, draft.Subtotal)
}

func TestReconcile_DeletedProductIsDroppedNotFatal(t *testing.T) {
	r := NewReconciler(testGateway(), DefaultConfig())

	draft, err := r.Reconcile(context.Background(), cartWith(
		domain.CartEntry{ProductID: "A", Quantity: 2},
		domain.CartEntry{ProductID: "gone", Quantity: 5},
		domain.CartEntry{ProductID: "B", Quantity: 1},
	))

	require.NoError(t, err)
	require.Len(t, draft.Lines, 2)
	assert.Equal(t, []string{"gone"}, draft.DroppedProductIDs)
	assert.Equal(t, 1600.0, draft.Subtotal, "dropped line must not count toward the total")
	assert.Equal(t, 1600.0, draft.PayableTotal)
}

func TestReconcile_DroppedIDReportedOncePerProduct(t *testing.T) {
	r := NewReconciler(testGateway(), DefaultConfig())

	draft, err := r.Reconcile(context.Background(), cartWith(
		domain.CartEntry{ProductID: "gone", Size: "M", Quantity: 1},
		domain.CartEntry{ProductID: "gone", Size: "L", Quantity: 2},
	))

	require.NoError(t, err)
	assert.Equal(t, []string{"gone"}, draft.DroppedProductIDs)
	assert.Empty(t, draft.Lines)
	assert.Equal(t, 0.0, draft.PayableTotal)
}

func TestReconcile_SingleBatchFetch(t *testing.T) {
	gateway := testGateway()
	r := NewReconciler(gateway, DefaultConfig())

	_, err := r.Reconcile(context.Background(), cartWith(
		domain.CartEntry{ProductID: "A", Size: "M", Quantity: 1},
		domain.CartEntry{ProductID: "A", Size: "L", Quantity: 1},
		domain.CartEntry{ProductID: "B", Quantity: 1},
	))

	require.NoError(t, err)
	assert.Equal(t, 1, gateway.Calls, "all products must come from one batch request")
}

func TestReconcile_EmptyCart(t *testing.T) {
	gateway := testGateway()
	r := NewReconciler(gateway, DefaultConfig())

	draft, err := r.Reconcile(context.Background(), cartWith())

	require.NoError(t, err)
	assert.Empty(t, draft.Lines)
	assert.Equal(t, 0.0, draft.PayableTotal)
	assert.Equal(t, 0, gateway.Calls, "no ids means no catalog round trip")
}

func TestReconcile_GatewayErrorPropagates(t *testing.T) {
	gateway := &MockGateway{Err: errors.New("catalog unreachable")}
	r := NewReconciler(gateway, DefaultConfig())

	draft, err := r.Reconcile(context.Background(), cartWith(
		domain.CartEntry{ProductID: "A", Quantity: 1},
	))

	assert.Error(t, err)
	assert.Nil(t, draft)
}

func TestReconcile_Deterministic(t *testing.T) {
	r := NewReconciler(testGateway(), DefaultConfig())
	cart := cartWith(
		domain.CartEntry{ProductID: "B", Quantity: 1},
		domain.CartEntry{ProductID: "gone", Quantity: 2},
		domain.CartEntry{ProductID: "A", Quantity: 3},
	)

	first, err := r.Reconcile(context.Background(), cart)
	require.NoError(t, err)
	second, err := r.Reconcile(context.Background(), cart)
	require.NoError(t, err)

	assert.Equal(t, first, second, "unchanged cart and catalog must reconcile identically")
}

func TestReconcile_CustomConfig(t *testing.T) {
	r := NewReconciler(testGateway(), Config{FreeDeliveryThreshold: 2000, DeliveryCharge: 100})

	draft, err := r.Reconcile(context.Background(), cartWith(
		domain.CartEntry{ProductID: "A", Quantity: 2},
		domain.CartEntry{ProductID: "B", Quantity: 1},
	))

	require.NoError(t, err)
	assert.Equal(t, 100.0, draft.DeliveryCharge)
	assert.Equal(t, 1700.0, draft.PayableTotal)
}
