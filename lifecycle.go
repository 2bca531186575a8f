package kiln

import "context"

// Initialize computes the dependency order, resolves (and so constructs)
// every component in that order, and calls Initialize on every instance
// that implements [Initializer]. Any failure aborts the whole operation
// and propagates to the caller.
func (c *container) Initialize(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return NewServiceError("ALREADY_INITIALIZED", "Container is already initialized")
	}

	order, err := c.resolveDependencyOrderLocked()
	if err != nil {
		return err
	}

	for _, name := range order {
		instance, err := c.resolveLocked(ctx, name)
		if err != nil {
			return err
		}
		if init, ok := instance.(Initializer); ok {
			if err := init.Initialize(ctx); err != nil {
				return err
			}
		}
	}

	c.initialized = true
	c.emitter.Emit(EventInitialized, struct{}{})
	return nil
}

// Shutdown traverses the instance cache in exact reverse construction
// order, calling Shutdown on every instance that implements
// [Shutdowner]. Per-component failures are contained — caught, emitted
// as shutdown:error, and do not abort the traversal. After every attempt
// the instance cache is cleared and the state returns to uninitialized.
// Calling Shutdown when never initialized is a no-op.
func (c *container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return nil
	}

	for i := len(c.cacheOrder) - 1; i >= 0; i-- {
		name := c.cacheOrder[i]
		instance := c.cache[name]
		if sd, ok := instance.(Shutdowner); ok {
			if err := sd.Shutdown(ctx); err != nil {
				c.emitter.Emit(EventShutdownError, ShutdownError{Name: name, Err: err})
			}
		}
	}

	c.cache = make(map[string]any)
	c.cacheOrder = nil
	c.initialized = false

	c.emitter.Emit(EventShutdown, struct{}{})
	return nil
}
