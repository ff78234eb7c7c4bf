// Package registry keeps the catalogue of board variants.
// Variants register themselves from init() functions so the CLI can list and
// pick them without hardcoding the set.
package registry

import (
	"fmt"
	"sort"
	"sync"
)

// Variant is a named board setup.
type Variant struct {
	ID          string // Used on the command line, e.g. "classic"
	Title       string
	Description string
	Width       int
	Height      int
	Boundary    string // "wall" or "wrap"
}

var (
	variants = make(map[string]Variant)
	mu       sync.RWMutex
)

// Register adds a variant. Panics if the ID is already taken.
func Register(v Variant) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := variants[v.ID]; exists {
		panic(fmt.Sprintf("registry: variant %q already registered", v.ID))
	}
	variants[v.ID] = v
}

// List returns all registered variants sorted by ID.
func List() []Variant {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get looks up a variant by ID.
func Get(id string) (Variant, error) {
	mu.RLock()
	defer mu.RUnlock()

	v, ok := variants[id]
	if !ok {
		return Variant{}, fmt.Errorf("registry: unknown variant %q", id)
	}
	return v, nil
}

// Exists checks if a variant with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := variants[id]
	return ok
}
