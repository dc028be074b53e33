package plugins

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrModuleNotFound is returned when no module is registered under a
// requested load path.
var ErrModuleNotFound = errors.New("module not found")

var (
	// modules is the package-level registry map, keyed by load path
	modules = make(map[string]Module)
	// mu protects concurrent access to the modules map
	mu sync.RWMutex
)

// RegisterModule adds a module to the link-time registry under the
// given load path. Plugin implementations compiled into the host
// process register themselves here, typically from an init function.
func RegisterModule(path string, module Module) error {
	if path == "" {
		return fmt.Errorf("cannot register module under empty path")
	}
	if module == nil {
		return fmt.Errorf("cannot register nil module")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := modules[path]; exists {
		return fmt.Errorf("module already registered: %s", path)
	}

	modules[path] = module
	return nil
}

// UnregisterModule removes a module from the registry
func UnregisterModule(path string) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modules[path]; !exists {
		return fmt.Errorf("%w: %s", ErrModuleNotFound, path)
	}

	delete(modules, path)
	return nil
}

// LookupModule retrieves a registered module by load path
func LookupModule(path string) (Module, bool) {
	mu.RLock()
	defer mu.RUnlock()

	module, exists := modules[path]
	return module, exists
}

// ListModulePaths returns the registered load paths in sorted order
func ListModulePaths() []string {
	mu.RLock()
	defer mu.RUnlock()

	paths := make([]string, 0, len(modules))
	for path := range modules {
		paths = append(paths, path)
	}
	sort.Strings(paths)

	return paths
}

// ClearModules removes all modules from the registry. Intended for tests.
func ClearModules() {
	mu.Lock()
	defer mu.Unlock()

	modules = make(map[string]Module)
}

// RegistryLoader is a ModuleLoader backed by the link-time registry.
// It is the loading strategy for plugin modules compiled into the host
// process rather than loaded from disk.
type RegistryLoader struct{}

// Load resolves path against the registry
func (l *RegistryLoader) Load(path string) (Module, error) {
	module, ok := LookupModule(path)
	if !ok {
		return nil, fmt.Errorf("%w: no module registered for path %s", ErrModuleNotFound, path)
	}
	return module, nil
}
