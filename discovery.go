package kiln

import (
	"context"
	"fmt"
)

// Scanner enumerates candidate entry paths under a directory for the
// discovery pipeline to load.
type Scanner interface {
	ScanDirectory(ctx context.Context, path string) ([]string, error)
}

// ConfigLoader returns the declarative configuration for a discovery
// entry. A usable component's config must include "enabled" (bool) and
// "name" (string).
type ConfigLoader interface {
	LoadConfig(ctx context.Context, entryPath string) (map[string]any, error)
}

// ConfigValidator reports whether config satisfies schema, returning an
// error if it does not.
type ConfigValidator interface {
	ValidateConfig(config map[string]any, schema []byte) error
}

// ImplementationLoader resolves a discovery entry's code module and
// yields its component Implementation.
type ImplementationLoader interface {
	LoadImplementation(ctx context.Context, entryPath string) (Implementation, error)
}

// DiscoveryResult is one successfully loaded discovery entry.
type DiscoveryResult struct {
	Name           string
	Config         map[string]any
	Implementation Implementation
}

// Discover scans path for entries belonging to the manifest registered
// under typ. For each entry it loads its config, skips it if disabled,
// validates the config against the manifest's schema, loads its
// implementation, and collects the result keyed by the entry's declared
// name. Per-entry failures are contained (emitted as discovery:error);
// a directory-scan failure is fatal to the whole call.
func (c *container) Discover(ctx context.Context, typ, path string) (map[string]DiscoveryResult, error) {
	c.mu.RLock()
	manifest, ok := c.manifests[typ]
	scanner := c.scanner
	loader := c.configLoad
	validator := c.configValid
	implLoader := c.implLoad
	c.mu.RUnlock()

	if !ok {
		return nil, NewConfigError("UNKNOWN_TYPE", fmt.Sprintf("No manifest registered for type: %s", typ))
	}

	entries, err := scanner.ScanDirectory(ctx, path)
	if err != nil {
		return nil, NewServiceError(
			"DISCOVERY_FAILED",
			fmt.Sprintf("Failed to discover %s components", typ),
			WithCause(err),
		)
	}

	results := make(map[string]DiscoveryResult)
	for _, entry := range entries {
		result, skip, err := loadComponent(ctx, entry, manifest, loader, validator, implLoader)
		if err != nil {
			c.emitter.Emit(EventDiscoveryError, DiscoveryError{Entry: entry, Err: err})
			continue
		}
		if skip {
			continue
		}
		results[result.Name] = result
	}

	c.emitter.Emit(EventDiscoveryCompleted, DiscoveryCompleted{Type: typ, Count: len(results)})
	return results, nil
}

func loadComponent(
	ctx context.Context,
	entryPath string,
	manifest Manifest,
	loader ConfigLoader,
	validator ConfigValidator,
	implLoader ImplementationLoader,
) (DiscoveryResult, bool, error) {
	config, err := loader.LoadConfig(ctx, entryPath)
	if err != nil {
		return DiscoveryResult{}, false, err
	}

	enabled, _ := config["enabled"].(bool)
	if !enabled {
		return DiscoveryResult{}, true, nil
	}

	if err := validator.ValidateConfig(config, manifest.ConfigSchema); err != nil {
		return DiscoveryResult{}, false, NewConfigError(
			"INVALID_CONFIG",
			fmt.Sprintf("Invalid config for %s", entryPath),
			WithCause(err),
		)
	}

	impl, err := implLoader.LoadImplementation(ctx, entryPath)
	if err != nil {
		return DiscoveryResult{}, false, NewConfigError(
			"LOAD_FAILED",
			fmt.Sprintf("Failed to load component from %s", entryPath),
			WithCause(err),
		)
	}

	name, _ := config["name"].(string)
	return DiscoveryResult{Name: name, Config: config, Implementation: impl}, false, nil
}
