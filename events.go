package kiln

import "sync"

// Event names emitted by the container.
const (
	EventComponentRegistered = "component:registered"
	EventComponentResolved   = "component:resolved"
	EventManifestRegistered  = "manifest:registered"
	EventInitialized         = "initialized"
	EventShutdown            = "shutdown"
	EventShutdownError       = "shutdown:error"
	EventDiscoveryError      = "discovery:error"
	EventDiscoveryCompleted  = "discovery:completed"
)

// ComponentRegistered is the payload for EventComponentRegistered.
type ComponentRegistered struct{ Name string }

// ComponentResolved is the payload for EventComponentResolved.
type ComponentResolved struct {
	Name     string
	Instance any
}

// ManifestRegistered is the payload for EventManifestRegistered.
type ManifestRegistered struct{ Type string }

// ShutdownError is the payload for EventShutdownError.
type ShutdownError struct {
	Name string
	Err  error
}

// DiscoveryError is the payload for EventDiscoveryError.
type DiscoveryError struct {
	Entry string
	Err   error
}

// DiscoveryCompleted is the payload for EventDiscoveryCompleted.
type DiscoveryCompleted struct {
	Type  string
	Count int
}

// Handler receives an event's payload. The concrete type matches the
// event name it was subscribed to (see the Event* payload types above).
type Handler func(payload any)

// Emitter is a synchronous, in-process, multi-listener publish/subscribe
// keyed by event name. Handlers for a given event fire in subscription
// order, and Emit does not return to its caller until every handler has
// run — there is no back-pressure or cross-event ordering guarantee
// beyond that.
type Emitter struct {
	mu       sync.Mutex
	handlers map[string][]Handler
}

// NewEmitter creates an empty Emitter.
func NewEmitter() *Emitter {
	return &Emitter{handlers: make(map[string][]Handler)}
}

// On subscribes handler to event. Subscriptions are never removed; kiln
// containers are expected to live for a process's lifetime.
func (em *Emitter) On(event string, handler Handler) {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.handlers[event] = append(em.handlers[event], handler)
}

// Emit synchronously invokes every handler subscribed to event, in
// subscription order, passing payload to each.
func (em *Emitter) Emit(event string, payload any) {
	em.mu.Lock()
	handlers := make([]Handler, len(em.handlers[event]))
	copy(handlers, em.handlers[event])
	em.mu.Unlock()

	for _, h := range handlers {
		h(payload)
	}
}
