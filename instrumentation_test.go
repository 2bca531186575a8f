package kiln

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestInstrumentation_CountsComponentRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	inst := NewInstrumentation(reg)
	c := New(WithInstrumentation(inst))

	mustRegister(t, c, "logger", newTestLoggerImpl())
	mustRegister(t, c, "config", newTestConfigImpl())

	assert.Equal(t, float64(2), counterValue(t, inst.componentsRegistered))
}

func TestInstrumentation_CountsManifestRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	inst := NewInstrumentation(reg)
	c := New(WithInstrumentation(inst))

	require.NoError(t, c.RegisterManifest("plugin", Manifest{}))

	assert.Equal(t, float64(1), counterValue(t, inst.manifestsRegistered))
}

func TestInstrumentation_CountsResolution(t *testing.T) {
	reg := prometheus.NewRegistry()
	inst := NewInstrumentation(reg)
	c := New(WithInstrumentation(inst))

	mustRegister(t, c, "logger", newTestLoggerImpl())
	_, err := c.Resolve(context.Background(), "logger")
	require.NoError(t, err)
	_, err = c.Resolve(context.Background(), "logger")
	require.NoError(t, err)

	// The second Resolve is a singleton cache hit, which returns the cached
	// instance without emitting component:resolved.
	assert.Equal(t, float64(1), counterValue(t, inst.componentsResolved))
}

func TestInstrumentation_CountsShutdownErrors(t *testing.T) {
	reg := prometheus.NewRegistry()
	inst := NewInstrumentation(reg)
	c := New(WithInstrumentation(inst))

	mustRegister(t, c, "failing", Factory(func() *failingShutdown { return &failingShutdown{} }))
	mustInitialize(t, c)
	_, err := c.Resolve(context.Background(), "failing")
	require.NoError(t, err)

	require.NoError(t, c.Shutdown(context.Background()))

	assert.Equal(t, float64(1), counterValue(t, inst.shutdownErrors))
}

func TestInstrumentation_NilByDefault(t *testing.T) {
	c := New()
	mustRegister(t, c, "logger", newTestLoggerImpl())
	_, err := c.Resolve(context.Background(), "logger")
	require.NoError(t, err)
}
