package machine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAckWaiter(t *testing.T) {
	start := time.Unix(0, 0)

	w := newAckWaiter(start.Add(time.Second))
	assert.Equal(t, awaitingAck, w.state)
	w.feed([]byte("O"))
	w.tick(start)
	assert.Equal(t, awaitingAck, w.state)
	w.feed([]byte("k\r\n"))
	assert.Equal(t, acked, w.state)
	assert.Equal(t, "Ok", w.text())

	// output after the ack is ignored and the deadline no longer applies
	w.feed([]byte("error:1"))
	w.tick(start.Add(time.Hour))
	assert.Equal(t, acked, w.state)
	assert.Equal(t, "Ok", w.text())

	w = newAckWaiter(start.Add(time.Second))
	w.feed([]byte("error:20\r\n"))
	w.tick(start.Add(999 * time.Millisecond))
	assert.Equal(t, awaitingAck, w.state)
	w.tick(start.Add(time.Second))
	assert.Equal(t, timedOut, w.state)
	assert.Equal(t, "timed out", w.state.String())

	// ok anywhere in the accumulated text counts
	w = newAckWaiter(start.Add(time.Second))
	w.feed([]byte("[MSG:Pgm End] ok"))
	assert.Equal(t, acked, w.state)
}
