package store

import (
	"sort"

	"github.com/sasha-s/go-deadlock"
)

// Registry keeps live items keyed by room code
type Registry[T any] struct {
	items map[string]T
	mu    deadlock.RWMutex
}

// NewRegistry creates an empty registry
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Get retrieves an item by code
func (r *Registry[T]) Get(code string) (T, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists := r.items[code]
	return item, exists
}

// Set stores an item
func (r *Registry[T]) Set(code string, item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[code] = item
}

// Delete removes an item, returning it if it was present
func (r *Registry[T]) Delete(code string) (T, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, exists := r.items[code]
	delete(r.items, code)
	return item, exists
}

// Exists checks if a code is taken
func (r *Registry[T]) Exists(code string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.items[code]
	return exists
}

// Add stores item under a freshly generated unused code
func (r *Registry[T]) Add(item T) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	for {
		code := GenerateCode()
		if _, taken := r.items[code]; !taken {
			r.items[code] = item
			return code
		}
	}
}

// Codes lists every stored code, sorted
func (r *Registry[T]) Codes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	codes := make([]string, 0, len(r.items))
	for code := range r.items {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// MemoryUsedIDs keeps the used question ids for the life of the process
type MemoryUsedIDs struct {
	ids []string
	mu  deadlock.Mutex
}

func (m *MemoryUsedIDs) LoadUsedIDs() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.ids...), nil
}

func (m *MemoryUsedIDs) SaveUsedIDs(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ids = append([]string(nil), ids...)
	return nil
}
