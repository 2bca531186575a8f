package kiln

import (
	"context"
	"sync"
)

// Initializer is the optional instance hook the lifecycle coordinator
// invokes during [Container.Initialize] and, for a singleton resolved
// after the container is already initialized, during [Container.Resolve].
type Initializer interface {
	Initialize(ctx context.Context) error
}

// Shutdowner is the optional instance hook the lifecycle coordinator
// invokes during [Container.Shutdown].
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}

// Manifest holds the metadata discovery needs for one component type: at
// least a JSON Schema describing the shape of a valid per-entry config.
type Manifest struct {
	ConfigSchema []byte
}

// Container is a component lifecycle container: a runtime registry that
// constructs named components on demand, injecting their declared
// dependencies, and drives orchestrated startup and shutdown across the
// whole component graph. Use [New] to create an instance.
type Container interface {
	// Register adds a component definition under name. name must be
	// non-empty and not already registered. impl's declared dependencies
	// (from [Factory]'s deps argument) must themselves be registered
	// before [Container.ResolveDependencyOrder] or [Container.Initialize]
	// can succeed, but Register itself does not validate them.
	Register(name string, impl Implementation, opts ...Option) error

	// RegisterManifest adds a discovery manifest under type. type must be
	// non-empty and not already registered.
	RegisterManifest(typ string, manifest Manifest) error

	// ResolveDependencyOrder computes a total order over every registered
	// component name such that each name appears after all of its
	// declared dependencies.
	ResolveDependencyOrder() ([]string, error)

	// Resolve returns the instance registered under name, constructing it
	// (and its dependencies) on first use.
	Resolve(ctx context.Context, name string) (any, error)

	// Initialize computes the dependency order, resolves (and so
	// constructs) every component in order, and calls Initialize on
	// every instance that implements [Initializer].
	Initialize(ctx context.Context) error

	// Shutdown tears down every cached singleton instance that implements
	// [Shutdowner], in exact reverse construction order, tolerating
	// per-component failures.
	Shutdown(ctx context.Context) error

	// Discover scans path for manifest-typed components using the
	// collaborators configured via [WithScanner], [WithConfigLoader],
	// [WithConfigValidator], and [WithImplementationLoader]. See spec
	// §4.6.
	Discover(ctx context.Context, typ, path string) (map[string]DiscoveryResult, error)

	// On subscribes handler to one of the Event* names in events.go.
	On(event string, handler Handler)

	// Initialized reports whether the container is currently in the
	// initialized state.
	Initialized() bool
}

type componentDef struct {
	name string
	impl Implementation
	opts Options
}

type container struct {
	mu sync.RWMutex

	emitter *Emitter

	// registry state. order tracks insertion order since Go maps are
	// unordered but the dependency resolver's tie-break requires it.
	order       []string
	defs        map[string]*componentDef
	manifests   map[string]Manifest
	manifestSeq []string

	// instance manager state. cacheOrder tracks the exact order singletons
	// were added, so shutdown can reverse it precisely.
	cache      map[string]any
	cacheOrder []string

	initialized bool

	scanner     Scanner
	configLoad  ConfigLoader
	configValid ConfigValidator
	implLoad    ImplementationLoader

	instrumentation *Instrumentation
}

// ContainerOption configures a Container at construction time.
type ContainerOption func(*container)

// WithScanner sets the discovery pipeline's scanDirectory collaborator.
func WithScanner(s Scanner) ContainerOption {
	return func(c *container) { c.scanner = s }
}

// WithConfigLoader sets the discovery pipeline's loadConfig collaborator.
func WithConfigLoader(l ConfigLoader) ContainerOption {
	return func(c *container) { c.configLoad = l }
}

// WithConfigValidator sets the discovery pipeline's validateConfig
// collaborator.
func WithConfigValidator(v ConfigValidator) ContainerOption {
	return func(c *container) { c.configValid = v }
}

// WithImplementationLoader sets the discovery pipeline's
// loadImplementation collaborator.
func WithImplementationLoader(l ImplementationLoader) ContainerOption {
	return func(c *container) { c.implLoad = l }
}

// WithInstrumentation attaches a metrics recorder (see instrumentation.go)
// that subscribes to the container's own events. A container built
// without this option records no metrics.
func WithInstrumentation(i *Instrumentation) ContainerOption {
	return func(c *container) { c.instrumentation = i }
}

// New creates an empty, uninitialized [Container] ready for registration.
func New(opts ...ContainerOption) Container {
	c := &container{
		emitter:   NewEmitter(),
		defs:      make(map[string]*componentDef),
		manifests: make(map[string]Manifest),
		cache:     make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.instrumentation != nil {
		c.instrumentation.attach(c)
	}
	return c
}

func (c *container) On(event string, handler Handler) {
	c.emitter.On(event, handler)
}

func (c *container) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.initialized
}
