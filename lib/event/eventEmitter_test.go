package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitDeliversToListeners(t *testing.T) {
	emitter := CreateEventEmitter()
	received := make(chan interface{}, 2)
	emitter.On("action", func(object ...interface{}) {
		received <- object[0]
	})

	emitter.Emit("action", "create")

	select {
	case value := <-received:
		assert.Equal(t, "create", value)
	case <-time.After(time.Second):
		t.Fatal("listener not called")
	}
}

func TestOnceRemovesListener(t *testing.T) {
	emitter := CreateEventEmitter()
	emitter.Once("action", func(object ...interface{}) {})
	require.Equal(t, 1, emitter.ListenerCount("action"))

	emitter.Emit("action")
	assert.Equal(t, 0, emitter.ListenerCount("action"))
}

func TestOffById(t *testing.T) {
	emitter := CreateEventEmitter()
	first := emitter.On("action", func(object ...interface{}) {}, 10)
	emitter.On("action", func(object ...interface{}) {}, 1)
	require.Equal(t, 2, emitter.ListenerCount("action"))

	emitter.Off("action", first)
	assert.Equal(t, 1, emitter.ListenerCount("action"))

	emitter.Off("action")
	assert.Equal(t, 0, emitter.ListenerCount("action"))
}

func TestHandlersOrderedByPriority(t *testing.T) {
	emitter := CreateEventEmitter()
	emitter.On("action", func(object ...interface{}) {}, 50)
	low := emitter.On("action", func(object ...interface{}) {}, 1)
	emitter.On("action", func(object ...interface{}) {}, 200)

	assert.Equal(t, low, emitter.callbacks["action"][0].Id)
	assert.Equal(t, 200, emitter.callbacks["action"][2].Priority)
}
