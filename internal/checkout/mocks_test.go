package checkout

import (
	"context"

	"github.com/Ackkerman111/sixseven-store/internal/catalog"
	"github.com/Ackkerman111/sixseven-store/internal/domain"
	"github.com/Ackkerman111/sixseven-store/internal/orders"
	"github.com/google/uuid"
)

// MockGateway implements catalog.Gateway over a fixed product map.
type MockGateway struct {
	Products map[string]*domain.Product
	Err      error
	Calls    int // number of GetByIDs round trips
}

func (m *MockGateway) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (m *MockGateway) GetByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	var out []*domain.Product
	for _, id := range ids {
		if p, ok := m.Products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockGateway) List(context.Context) ([]*domain.Product, error) {
	return nil, m.Err
}

func (m *MockGateway) Search(context.Context, string, string) ([]*domain.Product, error) {
	return nil, m.Err
}

// MockOrderRepository captures the order passed to Create.
type MockOrderRepository struct {
	Created   *domain.Order
	CreateErr error
}

func (m *MockOrderRepository) Create(_ context.Context, order *domain.Order) error {
	if m.CreateErr != nil {
		return m.CreateErr
	}
	m.Created = order
	return nil
}

func (m *MockOrderRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	if m.Created != nil && m.Created.ID == id {
		return m.Created, nil
	}
	return nil, orders.ErrOrderNotFound
}

func (m *MockOrderRepository) ListRecent(context.Context, int) ([]*domain.Order, error) {
	if m.Created == nil {
		return nil, nil
	}
	return []*domain.Order{m.Created}, nil
}

func (m *MockOrderRepository) UpdateStatus(context.Context, uuid.UUID, domain.OrderStatus) error {
	return nil
}

func (m *MockOrderRepository) RunMigrations(*orders.Credentials) error {
	return nil
}

func (m *MockOrderRepository) Close() error {
	return nil
}

// MockClearer records whether the cart was cleared.
type MockClearer struct {
	Cleared  bool
	ClearErr error
}

func (m *MockClearer) Clear(context.Context, string) error {
	if m.ClearErr != nil {
		return m.ClearErr
	}
	m.Cleared = true
	return nil
}
