package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Ackkerman111/sixseven-store/internal/domain"
	"github.com/Ackkerman111/sixseven-store/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type OrdersHandler struct {
	repo    orders.OrderRepository
	timeout time.Duration
}

func NewOrdersHandler(repo orders.OrderRepository, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{
		repo:    repo,
		timeout: timeout,
	}
}

type OrderResponse struct {
	ID             string             `json:"id"`
	CustomerName   string             `json:"customer_name"`
	Phone          string             `json:"phone"`
	Items          []domain.OrderItem `json:"items"`
	Subtotal       float64            `json:"subtotal"`
	DeliveryCharge float64            `json:"delivery_charge"`
	Total          float64            `json:"total"`
	Status         string             `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}

type OrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order id must be a uuid")
		return
	}

	order, err := h.repo.GetByID(ctx, id)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	resp := toOrderResponse(order)
	respondJSON(w, http.StatusOK, &resp)
}

// List serves the dashboard order feed, newest first.
func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 || parsed > 500 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 500")
			return
		}
		limit = parsed
	}

	result, err := h.repo.ListRecent(ctx, limit)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	out := make([]OrderResponse, len(result))
	for i, order := range result {
		out[i] = toOrderResponse(order)
	}

	respondJSON(w, http.StatusOK, &OrdersResponse{Orders: out})
}

func toOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:             order.ID.String(),
		CustomerName:   order.CustomerName,
		Phone:          order.Phone,
		Items:          order.Items,
		Subtotal:       order.Subtotal,
		DeliveryCharge: order.DeliveryCharge,
		Total:          order.Total,
		Status:         order.Status.String(),
		CreatedAt:      order.CreatedAt,
	}
}
