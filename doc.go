// Package kiln provides a lightweight component lifecycle container for Go.
//
// Kiln accepts named component definitions — a factory function or an
// opaque value — computes a safe instantiation order from declared
// dependencies, and materializes singletons on demand by injecting their
// resolved dependencies as a map. It drives orchestrated startup and
// shutdown across the whole component graph and can discover components
// on disk against registered manifests.
//
// # Quick Start
//
//	c := kiln.New()
//	c.Register("logger", kiln.Factory(func(kiln.Dependencies) (any, error) {
//	    return &Logger{}, nil
//	}))
//	c.Register("database", kiln.Factory(func(deps kiln.Dependencies) (any, error) {
//	    return &Database{Logger: deps["logger"].(*Logger)}, nil
//	}, "logger"))
//
//	ctx := context.Background()
//	if err := c.Initialize(ctx); err != nil {
//	    log.Fatal(err)
//	}
//	db, err := c.Resolve(ctx, "database")
//
// # Lifetimes
//
// [Singleton] (default) — one shared instance for the lifetime of the
// container. [Transient] — a fresh instance on every [Container.Resolve]
// call.
//
//	c.Register("request-id", kiln.Factory(newRequestID), kiln.WithLifetime(kiln.Transient))
//
// # Lifecycle
//
// Components that implement [Initializer] and [Shutdowner] are driven by
// [Container.Initialize] and [Container.Shutdown] respectively, in
// dependency order and reverse dependency order.
//
// # Discovery
//
// [Container.Discover] scans a directory for manifest-typed components
// using pluggable collaborators (see the discovery subpackage for
// default, koanf/jsonschema/fsnotify-backed implementations).
package kiln
