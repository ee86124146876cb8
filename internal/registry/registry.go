// Package registry provides a global registry for level-set factories.
// Level sets register themselves in init() functions, allowing the CLI
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/blocky/internal/games/blocky/core"
)

// LevelSet is an ordered collection of Blocky levels.
type LevelSet interface {
	// Name returns a unique identifier for this set (e.g., "classic").
	// Used for CLI commands and run history.
	Name() string

	// Title returns a human-readable name for display.
	Title() string

	// Len returns the number of levels in the set.
	Len() int

	// Level returns the level at the given 1-based index.
	Level(i int) (*core.Level, error)

	// LevelName returns the display name of the level at the given 1-based index.
	LevelName(i int) string
}

// SetInfo contains metadata about a registered level set.
type SetInfo struct {
	ID     string
	Title  string
	Levels int
}

// Factory creates a new instance of a level set. Options are applied to
// every level of the set.
type Factory func(opts ...core.LevelOption) (LevelSet, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]SetInfo)
	mu        sync.RWMutex
)

// Register adds a level-set factory to the registry.
// Typically called from a package's init() function.
// Panics if a set with the same ID is already registered or if the
// factory cannot build the set.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: level set %q already registered", id))
	}

	// Get metadata by creating a temporary instance
	s, err := f()
	if err != nil {
		panic(fmt.Sprintf("registry: level set %q: %v", id, err))
	}

	factories[id] = f
	infos[id] = SetInfo{ID: id, Title: s.Title(), Levels: s.Len()}
}

// List returns information about all registered level sets, sorted by ID.
func List() []SetInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SetInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a level set by its ID.
// Returns an error if the ID is not registered.
func Create(id string, opts ...core.LevelOption) (LevelSet, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown level set %q", id)
	}

	return f(opts...)
}

// Exists checks if a level set with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
