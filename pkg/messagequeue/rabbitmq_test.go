package messagequeue

import (
	"testing"
	"time"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBridgeDeliveries(t *testing.T) {
	t.Run("forwards bodies until the deliveries channel closes", func(t *testing.T) {
		deliveries := make(chan amqp.Delivery, 2)
		deliveries <- amqp.Delivery{Body: []byte("one")}
		deliveries <- amqp.Delivery{Body: []byte("two")}
		close(deliveries)

		out := make(chan []byte)
		go bridgeDeliveries(deliveries, out, make(chan struct{}))

		assert.Equal(t, []byte("one"), <-out)
		assert.Equal(t, []byte("two"), <-out)
		_, open := <-out
		assert.False(t, open, "out must close when deliveries closes")
	})

	t.Run("a blocked send unblocks when done is signaled", func(t *testing.T) {
		deliveries := make(chan amqp.Delivery, 1)
		deliveries <- amqp.Delivery{Body: []byte("stranded")}

		out := make(chan []byte) // nobody reading
		done := make(chan struct{})
		go bridgeDeliveries(deliveries, out, done)

		close(done)

		select {
		case _, open := <-out:
			require.False(t, open, "out must close once done releases the bridge")
		case <-time.After(2 * time.Second):
			t.Fatal("bridge goroutine stayed blocked after done was signaled")
		}
	})
}
