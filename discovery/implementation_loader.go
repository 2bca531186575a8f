package discovery

import (
	"context"
	"fmt"
	"sync"

	"github.com/kilnhq/kiln"
)

// RegistryImplementationLoader is the default LoadImplementation
// collaborator. Dynamic module loading is out of scope (a Go binary's
// code is fixed at compile time), so instead of loading code from
// entryPath at runtime, a caller registers the Implementation that
// entryPath should resolve to ahead of calling Discover — the simplest
// faithful stand-in for "load implementation" a compiled Go program can
// offer.
type RegistryImplementationLoader struct {
	mu    sync.RWMutex
	impls map[string]kiln.Implementation
}

// NewRegistryImplementationLoader creates an empty loader.
func NewRegistryImplementationLoader() *RegistryImplementationLoader {
	return &RegistryImplementationLoader{impls: make(map[string]kiln.Implementation)}
}

// Bind associates entryPath with impl so a later Discover call resolves it.
func (l *RegistryImplementationLoader) Bind(entryPath string, impl kiln.Implementation) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.impls[entryPath] = impl
}

func (l *RegistryImplementationLoader) LoadImplementation(ctx context.Context, entryPath string) (kiln.Implementation, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	impl, ok := l.impls[entryPath]
	if !ok {
		return kiln.Implementation{}, fmt.Errorf("discovery: no implementation bound for %s", entryPath)
	}
	return impl, nil
}
