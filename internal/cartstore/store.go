package cartstore

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/Ackkerman111/sixseven-store/internal/domain"
	"golang.org/x/sync/singleflight"
)

var ErrEntryNotFound = errors.New("entry not found in cart")

// Store owns every cart mutation in the storefront. All call sites go through
// its narrow API; nothing else reads or writes cart state directly. A mutation
// is durable before the call returns, so a crash right after a call cannot
// lose it.
type Store struct {
	repo  CartRepository
	cache CartCache
	sfg   singleflight.Group // Prevents cache stampede
}

func NewStore(repo CartRepository, cache CartCache) *Store {
	return &Store{
		repo:  repo,
		cache: cache,
	}
}

// Get returns the cart for the session, an empty cart when none exists yet.
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(sessionID, func() (interface{}, error) {

		cart, err := s.cache.Get(ctx, sessionID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.repo.GetCart(ctx, sessionID)
		if errGet != nil && errors.Is(errGet, ErrCartNotFound) {
			return emptyCart(sessionID), nil
		}
		if errGet != nil {
			return nil, errGet
		}

		// set cache
		go func() {
			errSet := s.cache.Set(context.Background(), sessionID, cart)
			if errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})

	if err != nil {
		return nil, err
	}

	return v.(*domain.Cart), nil
}

// Add merges the entry into the cart. An entry with the same
// (product, size, color) key has its quantity incremented; anything else is
// appended, preserving insertion order. Quantity is clamped to at least 1.
func (s *Store) Add(ctx context.Context, sessionID string, entry domain.CartEntry) (*domain.Cart, error) {
	if entry.Quantity < 1 {
		entry.Quantity = 1
	}
	entry.AddedAt = time.Now()

	cart, err := s.loadForUpdate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Entries {
		if cart.Entries[i].Key() == entry.Key() {
			cart.Entries[i].Quantity += entry.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Entries = append(cart.Entries, entry)
	}

	return s.persist(ctx, sessionID, cart)
}

// SetQuantity overwrites the quantity of the keyed entry. A quantity below 1
// removes the entry instead.
func (s *Store) SetQuantity(ctx context.Context, sessionID string, key domain.VariantKey, quantity int) (*domain.Cart, error) {
	if quantity < 1 {
		return s.Remove(ctx, sessionID, key)
	}

	cart, err := s.loadForUpdate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	found := false
	for i := range cart.Entries {
		if cart.Entries[i].Key() == key {
			cart.Entries[i].Quantity = quantity
			found = true
			break
		}
	}
	if !found {
		return nil, ErrEntryNotFound
	}

	return s.persist(ctx, sessionID, cart)
}

// Remove drops the keyed entry. Removing an absent entry is a no-op.
func (s *Store) Remove(ctx context.Context, sessionID string, key domain.VariantKey) (*domain.Cart, error) {
	cart, err := s.loadForUpdate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	for i, e := range cart.Entries {
		if e.Key() == key {
			cart.Entries = append(cart.Entries[:i], cart.Entries[i+1:]...)
			return s.persist(ctx, sessionID, cart)
		}
	}

	return cart, nil
}

// Clear empties the cart. Clearing an absent cart succeeds.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	errDelete := s.repo.DeleteCart(ctx, sessionID)
	if errDelete != nil && !errors.Is(errDelete, ErrCartNotFound) {
		log.Printf("repo delete cart error: %v", errDelete)
		return errDelete
	}

	s.invalidateCache(sessionID)
	return nil
}

func (s *Store) loadForUpdate(ctx context.Context, sessionID string) (*domain.Cart, error) {
	cart, err := s.repo.GetCart(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return emptyCart(sessionID), nil
		}
		return nil, err
	}
	return cart, nil
}

func (s *Store) persist(ctx context.Context, sessionID string, cart *domain.Cart) (*domain.Cart, error) {
	if err := s.repo.UpsertCart(ctx, cart); err != nil {
		log.Printf("repo upsert cart error: %v", err)
		return nil, err
	}

	s.invalidateCache(sessionID)
	return cart, nil
}

func (s *Store) invalidateCache(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	errInvalidate := s.cache.Delete(ctx, sessionID)
	if errInvalidate != nil {
		log.Printf("cache invalidate error: %v", errInvalidate)
	}
}

func emptyCart(sessionID string) *domain.Cart {
	now := time.Now()
	return &domain.Cart{
		SessionID: sessionID,
		Entries:   nil,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
