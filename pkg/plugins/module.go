package plugins

import "sync"

// StaticModule is a map-backed Module. In-process plugin modules build
// one, register their factory constructors under the qualified names of
// their binding types, and register the module under a load path.
type StaticModule struct {
	name      string
	factories map[string]FactoryConstructor
	mu        sync.RWMutex
}

// NewStaticModule creates an empty static module
func NewStaticModule(name string) *StaticModule {
	return &StaticModule{
		name:      name,
		factories: make(map[string]FactoryConstructor),
	}
}

// Name returns the module name
func (m *StaticModule) Name() string { return m.name }

// RegisterFactory registers the default constructor of the factory type
// declared under the given qualified name
func (m *StaticModule) RegisterFactory(fullName string, ctor FactoryConstructor) {
	if fullName == "" || ctor == nil {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.factories[fullName] = ctor
}

// Lookup locates a factory constructor by qualified type name
func (m *StaticModule) Lookup(fullName string) (FactoryConstructor, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	ctor, ok := m.factories[fullName]
	return ctor, ok
}

// FactoryFunc adapts a plain function to the Factory interface
type FactoryFunc func() (Plugin, error)

// CreatePlugin invokes the function
func (f FactoryFunc) CreatePlugin() (Plugin, error) { return f() }
