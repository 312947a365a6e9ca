// This file implements the per-session cart registry. Each browser session
// is handed an opaque cart id and gets its own Cart instance; carts live for
// the process lifetime and are dropped only on explicit request.
package cart

import (
	"sync"

	"github.com/google/uuid"
)

// Store maps opaque cart ids to cart instances.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

// NewStore returns an empty cart registry.
func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Create registers a fresh cart and returns its id.
func (s *Store) Create() (string, *Cart) {
	id := uuid.NewString()
	c := New()

	s.mu.Lock()
	s.carts[id] = c
	s.mu.Unlock()
	return id, c
}

// Get returns the cart for id, or nil if the id is unknown.
func (s *Store) Get(id string) *Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.carts[id]
}

// GetOrCreate returns the cart for id, issuing a new cart (and id) when the
// id is empty or unknown. The returned id always resolves to the returned cart.
func (s *Store) GetOrCreate(id string) (string, *Cart) {
	if id != "" {
		if c := s.Get(id); c != nil {
			return id, c
		}
	}
	return s.Create()
}

// Delete drops the cart for id. Unknown ids are a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.carts, id)
	s.mu.Unlock()
}

// Len returns the number of live carts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
