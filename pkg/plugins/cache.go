package plugins

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the number of loaded modules kept alive by a
// CachingLoader when the caller does not choose a size.
const defaultCacheSize = 64

// CachingLoader wraps a ModuleLoader so that each distinct module path
// hits the underlying loader at most once while cached. The pipeline
// wraps the injected loader with one of these per compilation.
type CachingLoader struct {
	inner ModuleLoader
	cache *lru.Cache[string, Module]
	mu    sync.Mutex
}

// NewCachingLoader creates a caching loader. A non-positive size falls
// back to the default capacity.
func NewCachingLoader(inner ModuleLoader, size int) (*CachingLoader, error) {
	if inner == nil {
		return nil, fmt.Errorf("cannot wrap nil module loader")
	}
	if size <= 0 {
		size = defaultCacheSize
	}

	cache, err := lru.New[string, Module](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create module cache: %w", err)
	}

	return &CachingLoader{inner: inner, cache: cache}, nil
}

// Load returns the cached module for path, loading it on first use.
// Load failures are not cached; a later call retries the inner loader.
func (l *CachingLoader) Load(path string) (Module, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if module, ok := l.cache.Get(path); ok {
		return module, nil
	}

	module, err := l.inner.Load(path)
	if err != nil {
		return nil, err
	}

	l.cache.Add(path, module)
	return module, nil
}
