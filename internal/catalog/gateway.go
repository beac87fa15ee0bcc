package catalog

import (
	"context"
	"errors"

	"github.com/Ackkerman111/sixseven-store/internal/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Gateway is the read interface over the product store. Checkout only ever
// sees this side; authoring goes through Repository.
type Gateway interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]*domain.Product, error)
	List(ctx context.Context) ([]*domain.Product, error)
	Search(ctx context.Context, query, tag string) ([]*domain.Product, error)
}

// Repository adds the dashboard authoring operations on top of the read path.
type Repository interface {
	Gateway
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}
