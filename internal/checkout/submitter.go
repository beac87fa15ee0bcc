package checkout

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Ackkerman111/sixseven-store/internal/domain"
	"github.com/Ackkerman111/sixseven-store/internal/orders"
	"github.com/google/uuid"
)

// CartClearer is the one cart mutation the submitter is allowed to perform,
// and only after the order write is confirmed durable.
type CartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

type Submitter struct {
	orders orders.OrderRepository
	carts  CartClearer
}

func NewSubmitter(repo orders.OrderRepository, carts CartClearer) *Submitter {
	return &Submitter{
		orders: repo,
		carts:  carts,
	}
}

// Submit persists the reconciled draft as a pending order and clears the
// session cart. The cart is cleared only after the insert succeeds; any
// failure before that leaves it untouched so the customer can retry without
// re-entering selections.
func (s *Submitter) Submit(ctx context.Context, sessionID, customerName, phone string, draft *Draft) (*domain.Order, error) {
	customerName = strings.TrimSpace(customerName)
	phone = strings.TrimSpace(phone)

	if customerName == "" {
		return nil, &ValidationError{Field: "customer_name", Reason: "must not be empty"}
	}
	if phone == "" {
		return nil, &ValidationError{Field: "phone", Reason: "must not be empty"}
	}
	if draft == nil || len(draft.Lines) == 0 {
		return nil, ErrEmptyDraft
	}

	items := make([]domain.OrderItem, len(draft.Lines))
	for i, line := range draft.Lines {
		items[i] = domain.OrderItem{
			ProductID:   line.ProductID,
			ProductName: line.Name,
			Quantity:    line.Quantity,
			Price:       line.UnitPrice,
		}
	}

	now := time.Now()
	order := &domain.Order{
		ID:             uuid.New(),
		CustomerName:   customerName,
		Phone:          phone,
		Items:          items,
		Subtotal:       draft.Subtotal,
		DeliveryCharge: draft.DeliveryCharge,
		Total:          draft.PayableTotal,
		Status:         domain.OrderStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order is durable; a failed clear leaves a stale cart behind, not a
	// lost order, so log and report success.
	if err := s.carts.Clear(ctx, sessionID); err != nil {
		log.Printf("failed to clear cart for session %s after order %s: %v", sessionID, order.ID, err)
	}

	return order, nil
}
