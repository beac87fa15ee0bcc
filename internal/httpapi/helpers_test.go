package httpapi

import (
	"context"
	"net/http"
	"sync"

	"github.com/Ackkerman111/sixseven-store/internal/cartstore"
	"github.com/Ackkerman111/sixseven-store/internal/catalog"
	"github.com/Ackkerman111/sixseven-store/internal/domain"
	"github.com/Ackkerman111/sixseven-store/internal/orders"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// --- cart store fakes ---

type stubCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
	err   error
}

func newStubCartRepo() *stubCartRepo {
	return &stubCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *stubCartRepo) GetCart(_ context.Context, sessionID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	cart, ok := r.carts[sessionID]
	if !ok {
		return nil, cartstore.ErrCartNotFound
	}
	copied := *cart
	return &copied, nil
}

func (r *stubCartRepo) UpsertCart(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	copied := *cart
	r.carts[cart.SessionID] = &copied
	return nil
}

func (r *stubCartRepo) DeleteCart(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if _, ok := r.carts[sessionID]; !ok {
		return cartstore.ErrCartNotFound
	}
	delete(r.carts, sessionID)
	return nil
}

type stubCartCache struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func newStubCartCache() *stubCartCache {
	return &stubCartCache{carts: make(map[string]*domain.Cart)}
}

func (c *stubCartCache) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cart, ok := c.carts[sessionID]
	if !ok {
		return nil, cartstore.ErrCacheMiss
	}
	return cart, nil
}

func (c *stubCartCache) Set(_ context.Context, sessionID string, cart *domain.Cart) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.carts[sessionID] = cart
	return nil
}

func (c *stubCartCache) Delete(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.carts, sessionID)
	return nil
}

func newTestCartStore() *cartstore.Store {
	return cartstore.NewStore(newStubCartRepo(), newStubCartCache())
}

func newTestCartStoreWithRepo() (*cartstore.Store, *stubCartRepo) {
	repo := newStubCartRepo()
	return cartstore.NewStore(repo, newStubCartCache()), repo
}

// --- catalog fake ---

type stubCatalog struct {
	products map[string]*domain.Product
	err      error

	created []*domain.Product
	updated []*domain.Product
	deleted []string
}

func newStubCatalog(products ...*domain.Product) *stubCatalog {
	byID := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &stubCatalog{products: byID}
}

func (g *stubCatalog) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if g.err != nil {
		return nil, g.err
	}
	p, ok := g.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (g *stubCatalog) GetByIDs(_ context.Context, ids []string) ([]*domain.Product, error) {
	if g.err != nil {
		return nil, g.err
	}
	var found []*domain.Product
	for _, id := range ids {
		if p, ok := g.products[id]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

func (g *stubCatalog) List(_ context.Context) ([]*domain.Product, error) {
	if g.err != nil {
		return nil, g.err
	}
	var all []*domain.Product
	for _, p := range g.products {
		all = append(all, p)
	}
	return all, nil
}

func (g *stubCatalog) Search(_ context.Context, query, tag string) ([]*domain.Product, error) {
	return g.List(nil)
}

func (g *stubCatalog) Create(_ context.Context, p *domain.Product) error {
	if g.err != nil {
		return g.err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	g.products[p.ID] = p
	g.created = append(g.created, p)
	return nil
}

func (g *stubCatalog) Update(_ context.Context, p *domain.Product) error {
	if g.err != nil {
		return g.err
	}
	if _, ok := g.products[p.ID]; !ok {
		return catalog.ErrProductNotFound
	}
	g.products[p.ID] = p
	g.updated = append(g.updated, p)
	return nil
}

func (g *stubCatalog) Delete(_ context.Context, id string) error {
	if g.err != nil {
		return g.err
	}
	if _, ok := g.products[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(g.products, id)
	g.deleted = append(g.deleted, id)
	return nil
}

// --- orders fake ---

type stubOrderRepo struct {
	orders map[uuid.UUID]*domain.Order
	recent []*domain.Order
	err    error
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[uuid.UUID]*domain.Order)}
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if r.err != nil {
		return r.err
	}
	if _, ok := r.orders[order.ID]; ok {
		return orders.ErrDuplicateOrder
	}
	r.orders[order.ID] = order
	r.recent = append([]*domain.Order{order}, r.recent...)
	return nil
}

func (r *stubOrderRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	order, ok := r.orders[id]
	if !ok {
		return nil, orders.ErrOrderNotFound
	}
	return order, nil
}

func (r *stubOrderRepo) ListRecent(_ context.Context, limit int) ([]*domain.Order, error) {
	if r.err != nil {
		return nil, r.err
	}
	if limit > len(r.recent) {
		limit = len(r.recent)
	}
	return r.recent[:limit], nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, id uuid.UUID, status domain.OrderStatus) error {
	order, ok := r.orders[id]
	if !ok {
		return orders.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (r *stubOrderRepo) RunMigrations(*orders.Credentials) error { return nil }

func (r *stubOrderRepo) Close() error { return nil }

// --- request helpers ---

func withSession(r *http.Request, sessionID string) *http.Request {
	ctx := context.WithValue(r.Context(), "session_id", sessionID)
	return r.WithContext(ctx)
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
