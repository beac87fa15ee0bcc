package catalog

import (
	"context"
	"errors"

	"github.com/Ackkerman111/sixseven-store/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// BreakerGateway wraps the catalog read path in a circuit breaker so a failing
// product store trips fast instead of stalling every checkout. There is no
// retry here; retries stay a caller concern.
type BreakerGateway struct {
	next Gateway
	cb   *gobreaker.CircuitBreaker[any]
}

func NewBreakerGateway(next Gateway) *BreakerGateway {
	settings := gobreaker.Settings{
		Name: "product-catalog",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerGateway{
		next: next,
		cb:   gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (g *BreakerGateway) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	v, err := g.cb.Execute(func() (any, error) {
		p, err := g.next.GetByID(ctx, id)
		if errors.Is(err, ErrProductNotFound) {
			// A missing product is an answer, not a catalog outage.
			return (*domain.Product)(nil), nil
		}
		return p, err
	})
	if err != nil {
		return nil, err
	}
	p := v.(*domain.Product)
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

func (g *BreakerGateway) GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	v, err := g.cb.Execute(func() (any, error) {
		return g.next.GetByIDs(ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

func (g *BreakerGateway) List(ctx context.Context) ([]*domain.Product, error) {
	v, err := g.cb.Execute(func() (any, error) {
		return g.next.List(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

func (g *BreakerGateway) Search(ctx context.Context, query, tag string) ([]*domain.Product, error) {
	v, err := g.cb.Execute(func() (any, error) {
		return g.next.Search(ctx, query, tag)
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}
