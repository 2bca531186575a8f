package kiln

import "fmt"

type visitState int

const (
	unvisited visitState = iota
	visiting
	visited
)

// ResolveDependencyOrder computes a total order over every registered
// component such that each component appears after all of its declared
// dependencies. It performs a depth-first traversal over registered
// names in insertion order, appending each name to the output only
// after all of its declared dependencies have been appended, which
// makes registration order the deterministic tie-break among otherwise
// unordered components.
func (c *container) ResolveDependencyOrder() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resolveDependencyOrderLocked()
}

func (c *container) resolveDependencyOrderLocked() ([]string, error) {
	states := make(map[string]visitState, len(c.order))
	order := make([]string, 0, len(c.order))

	for _, name := range c.order {
		if err := c.visit(name, states, nil, &order); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (c *container) visit(name string, states map[string]visitState, stack []string, order *[]string) error {
	switch states[name] {
	case visiting:
		return c.circularError(name, stack)
	case visited:
		return nil
	}

	// name is always registered here: c.order only holds registered
	// roots, and dependencies are checked before we recurse into them.
	def := c.defs[name]

	states[name] = visiting
	stack = append(stack, name)

	for _, dep := range def.impl.dependencies() {
		if _, ok := c.defs[dep]; !ok {
			return NewConfigError("MISSING_DEPENDENCY", fmt.Sprintf("Dependency %s required by %s is not registered", dep, name))
		}
		if err := c.visit(dep, states, stack, order); err != nil {
			return err
		}
	}

	states[name] = visited
	*order = append(*order, name)
	return nil
}

func (c *container) circularError(name string, stack []string) error {
	return NewConfigError("CIRCULAR_DEPENDENCY", fmt.Sprintf("Circular dependency detected: %s", name))
}
