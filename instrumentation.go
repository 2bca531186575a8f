package kiln

import "github.com/prometheus/client_golang/prometheus"

// Instrumentation records container activity as Prometheus counters by
// subscribing to the same events a caller can observe via [Container.On].
// It never participates in control flow — a container built without
// [WithInstrumentation] behaves identically, just silently.
//
// Grounded on moolen/spectre's use of github.com/prometheus/client_golang
// for service-level counters.
type Instrumentation struct {
	componentsRegistered prometheus.Counter
	componentsResolved   prometheus.Counter
	manifestsRegistered  prometheus.Counter
	discoveryCompleted   prometheus.Counter
	discoveryErrors      prometheus.Counter
	shutdownErrors       prometheus.Counter
}

// NewInstrumentation creates and registers the counters against reg.
func NewInstrumentation(reg prometheus.Registerer) *Instrumentation {
	i := &Instrumentation{
		componentsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiln_components_registered_total",
			Help: "Number of components registered with the container.",
		}),
		componentsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiln_components_resolved_total",
			Help: "Number of component resolutions that constructed an instance (singleton cache hits are not counted).",
		}),
		manifestsRegistered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiln_manifests_registered_total",
			Help: "Number of discovery manifests registered.",
		}),
		discoveryCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiln_discovery_runs_total",
			Help: "Number of completed discovery passes.",
		}),
		discoveryErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiln_discovery_errors_total",
			Help: "Number of per-entry discovery failures.",
		}),
		shutdownErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "kiln_shutdown_errors_total",
			Help: "Number of per-component shutdown failures.",
		}),
	}
	reg.MustRegister(
		i.componentsRegistered,
		i.componentsResolved,
		i.manifestsRegistered,
		i.discoveryCompleted,
		i.discoveryErrors,
		i.shutdownErrors,
	)
	return i
}

func (i *Instrumentation) attach(c *container) {
	c.emitter.On(EventComponentRegistered, func(any) { i.componentsRegistered.Inc() })
	c.emitter.On(EventComponentResolved, func(any) { i.componentsResolved.Inc() })
	c.emitter.On(EventManifestRegistered, func(any) { i.manifestsRegistered.Inc() })
	c.emitter.On(EventDiscoveryCompleted, func(any) { i.discoveryCompleted.Inc() })
	c.emitter.On(EventDiscoveryError, func(any) { i.discoveryErrors.Inc() })
	c.emitter.On(EventShutdownError, func(any) { i.shutdownErrors.Inc() })
}
