package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Ackkerman111/sixseven-store/internal/cartstore"
	"github.com/Ackkerman111/sixseven-store/internal/checkout"
)

type CheckoutHandler struct {
	carts      *cartstore.Store
	reconciler *checkout.Reconciler
	submitter  *checkout.Submitter
	timeout    time.Duration
}

func NewCheckoutHandler(carts *cartstore.Store, reconciler *checkout.Reconciler, submitter *checkout.Submitter, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		carts:      carts,
		reconciler: reconciler,
		submitter:  submitter,
		timeout:    timeout,
	}
}

type PlaceOrderRequestDTO struct {
	CustomerName string `json:"customer_name"`
	Phone        string `json:"phone"`
}

type PlaceOrderResponseDTO struct {
	OrderID           string   `json:"order_id"`
	Status            string   `json:"status"`
	Subtotal          float64  `json:"subtotal"`
	DeliveryCharge    float64  `json:"delivery_charge"`
	Total             float64  `json:"total"`
	DroppedProductIDs []string `json:"dropped_product_ids"`
}

// Quote re-prices the current cart without creating anything, so the cart
// page can show authoritative totals and stale-entry warnings.
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	cart, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	draft, err := h.reconciler.Reconcile(ctx, cart)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, draft)
}

// PlaceOrder reconciles and submits in sequence. The cart is cleared only
// after the order row is durably written; any failure on the way leaves it
// untouched.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	sessionID := getSessionIDFromContext(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusUnauthorized, "no_session", "missing session")
		return
	}

	var req PlaceOrderRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	cart, err := h.carts.Get(ctx, sessionID)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	draft, err := h.reconciler.Reconcile(ctx, cart)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	order, err := h.submitter.Submit(ctx, sessionID, req.CustomerName, req.Phone, draft)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, PlaceOrderResponseDTO{
		OrderID:           order.ID.String(),
		Status:            order.Status.String(),
		Subtotal:          order.Subtotal,
		DeliveryCharge:    order.DeliveryCharge,
		Total:             order.Total,
		DroppedProductIDs: draft.DroppedProductIDs,
	})
}
