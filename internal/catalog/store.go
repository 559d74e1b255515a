package catalog

import (
	"fmt"
	"sync"

	"github.com/scottwells/storefront/internal/model"
)

// Store holds the current in-memory product collection. Order is
// newest-first and significant for display. There is no caching layer
// beyond the collection itself; mutations are immediately visible.
type Store struct {
	mu       sync.RWMutex
	products []model.Product
}

// NewStore returns an empty catalog store.
func NewStore() *Store {
	return &Store{}
}

// Load replaces the entire collection. Last load wins; there are no
// merge semantics.
func (s *Store) Load(products []model.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make([]model.Product, len(products))
	copy(s.products, products)
}

// Add validates the product and prepends it to the collection
// (newest-first ordering). Validation happens before any mutation.
// A duplicate id violates the uniqueness invariant and is rejected.
func (s *Store) Add(p model.Product) error {
	if err := ValidateDraft(model.Draft{
		Name:        p.Name,
		Price:       p.Price,
		Tags:        p.Tags,
		Description: p.Description,
	}); err != nil {
		return err
	}
	if p.ID == "" {
		return fmt.Errorf("%w: id required", ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.products {
		if existing.ID == p.ID {
			return fmt.Errorf("%w: duplicate id %s", ErrValidation, p.ID)
		}
	}
	s.products = append([]model.Product{p}, s.products...)
	return nil
}

// Remove deletes the product with the given id if present. Removing a
// non-existent id is a no-op, not an error.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return
		}
	}
}

// Get returns the product with the given id, or nil if absent.
func (s *Store) Get(id string) *model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.products {
		if s.products[i].ID == id {
			p := s.products[i]
			return &p
		}
	}
	return nil
}

// Products returns a snapshot copy of the collection in display order.
func (s *Store) Products() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the number of products in the collection.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// ValidateDraft checks the add-flow contract: non-empty name and
// description, non-negative price, and at least one valid tag.
func ValidateDraft(d model.Draft) error {
	if d.Name == "" {
		return fmt.Errorf("%w: name required", ErrValidation)
	}
	if d.Price < 0 {
		return fmt.Errorf("%w: price must be non-negative", ErrValidation)
	}
	if d.Description == "" {
		return fmt.Errorf("%w: description required", ErrValidation)
	}
	if len(d.Tags) == 0 {
		return fmt.Errorf("%w: at least one tag required", ErrValidation)
	}
	for _, t := range d.Tags {
		if !model.ValidTag(t) {
			return fmt.Errorf("%w: invalid tag %q", ErrValidation, t)
		}
	}
	return nil
}
