package kiln

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitter_DeliversInSubscriptionOrder(t *testing.T) {
	em := NewEmitter()
	var order []string

	em.On("evt", func(any) { order = append(order, "first") })
	em.On("evt", func(any) { order = append(order, "second") })
	em.On("evt", func(any) { order = append(order, "third") })

	em.Emit("evt", nil)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestEmitter_PassesPayloadToEveryHandler(t *testing.T) {
	em := NewEmitter()
	var got1, got2 string

	em.On("evt", func(p any) { got1 = p.(string) })
	em.On("evt", func(p any) { got2 = p.(string) })

	em.Emit("evt", "payload")

	assert.Equal(t, "payload", got1)
	assert.Equal(t, "payload", got2)
}

func TestEmitter_UnsubscribedEventIsNoop(t *testing.T) {
	em := NewEmitter()
	assert.NotPanics(t, func() { em.Emit("nothing-subscribed", nil) })
}

func TestEmitter_HandlersIsolatedPerEvent(t *testing.T) {
	em := NewEmitter()
	var aCount, bCount int

	em.On("a", func(any) { aCount++ })
	em.On("b", func(any) { bCount++ })

	em.Emit("a", nil)

	assert.Equal(t, 1, aCount)
	assert.Equal(t, 0, bCount)
}

func TestEmitter_EmitReturnsOnlyAfterAllHandlersRun(t *testing.T) {
	em := NewEmitter()
	done := false

	em.On("evt", func(any) { done = true })
	em.Emit("evt", nil)

	assert.True(t, done)
}
