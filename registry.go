package kiln

import "fmt"

func (c *container) Register(name string, impl Implementation, opts ...Option) error {
	if name == "" {
		return NewConfigError("INVALID_NAME", "component name must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.defs[name]; exists {
		return NewConfigError("ALREADY_REGISTERED", fmt.Sprintf("Component %s is already registered", name))
	}

	o := Options{Lifetime: Singleton}
	for _, opt := range opts {
		opt(&o)
	}

	c.defs[name] = &componentDef{name: name, impl: impl, opts: o}
	c.order = append(c.order, name)

	c.emitter.Emit(EventComponentRegistered, ComponentRegistered{Name: name})
	return nil
}

func (c *container) RegisterManifest(typ string, manifest Manifest) error {
	if typ == "" {
		return NewConfigError("INVALID_TYPE", "manifest type must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.manifests[typ]; exists {
		return NewConfigError("MANIFEST_EXISTS", fmt.Sprintf("Manifest already registered for type: %s", typ))
	}

	c.manifests[typ] = manifest
	c.manifestSeq = append(c.manifestSeq, typ)

	c.emitter.Emit(EventManifestRegistered, ManifestRegistered{Type: typ})
	return nil
}

func (c *componentDef) singleton() bool {
	return c.opts.Lifetime == Singleton
}
