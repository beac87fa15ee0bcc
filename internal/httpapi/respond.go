package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/Ackkerman111/sixseven-store/internal/cartstore"
	"github.com/Ackkerman111/sixseven-store/internal/catalog"
	"github.com/Ackkerman111/sixseven-store/internal/checkout"
	"github.com/Ackkerman111/sixseven-store/internal/orders"
	"github.com/sony/gobreaker/v2"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError maps errors from the core packages to HTTP status codes.
func handleDomainError(w http.ResponseWriter, err error) {
	var ve *checkout.ValidationError

	switch {
	case errors.As(err, &ve):
		respondError(w, http.StatusBadRequest, "validation_failed", ve.Error())
	case errors.Is(err, checkout.ErrEmptyDraft):
		respondError(w, http.StatusBadRequest, "empty_cart", "cart has no orderable items")
	case errors.Is(err, catalog.ErrProductNotFound):
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
	case errors.Is(err, cartstore.ErrEntryNotFound):
		respondError(w, http.StatusNotFound, "entry_not_found", "cart entry not found")
	case errors.Is(err, orders.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "product catalog is unavailable")
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
