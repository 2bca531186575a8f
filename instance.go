package kiln

import (
	"context"
	"fmt"
)

// Resolve returns the instance registered under name. For a singleton
// with a cached instance it returns that instance; otherwise it
// recursively resolves the component's declared dependencies, constructs
// the instance, caches it if singleton, runs its Initialize hook inline
// if the container is already initialized, and emits component:resolved.
func (c *container) Resolve(ctx context.Context, name string) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked(ctx, name)
}

func (c *container) resolveLocked(ctx context.Context, name string) (any, error) {
	def, ok := c.defs[name]
	if !ok {
		return nil, NewServiceError("UNKNOWN_COMPONENT", fmt.Sprintf("Component %s is not registered", name))
	}

	if def.singleton() {
		if inst, ok := c.cache[name]; ok {
			return inst, nil
		}
	}

	deps := make(Dependencies, len(def.impl.dependencies()))
	for _, dep := range def.impl.dependencies() {
		depInst, err := c.resolveLocked(ctx, dep)
		if err != nil {
			return nil, err
		}
		deps[dep] = depInst
	}

	instance, err := def.impl.construct(deps)
	if err != nil {
		return nil, err
	}

	if def.singleton() {
		c.cache[name] = instance
		c.cacheOrder = append(c.cacheOrder, name)
	}

	if c.initialized {
		if init, ok := instance.(Initializer); ok {
			if err := init.Initialize(ctx); err != nil {
				return nil, err
			}
		}
	}

	c.emitter.Emit(EventComponentResolved, ComponentResolved{Name: name, Instance: instance})
	return instance, nil
}
