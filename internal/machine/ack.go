package machine

import (
	"strings"
	"time"
)

type ackState int

const (
	awaitingAck ackState = iota
	acked
	timedOut
)

func (s ackState) String() string {
	switch s {
	case acked:
		return "acked"
	case timedOut:
		return "timed out"
	}
	return "awaiting ack"
}

// ackWaiter accumulates controller output for one command until it contains
// "ok" in any case or the deadline passes.
type ackWaiter struct {
	state    ackState
	deadline time.Time
	response strings.Builder
}

func newAckWaiter(deadline time.Time) *ackWaiter {
	return &ackWaiter{deadline: deadline}
}

func (w *ackWaiter) feed(p []byte) {
	if w.state != awaitingAck || len(p) == 0 {
		return
	}
	w.response.Write(p)
	if strings.Contains(strings.ToLower(w.response.String()), "ok") {
		w.state = acked
	}
}

func (w *ackWaiter) tick(now time.Time) {
	if w.state == awaitingAck && !now.Before(w.deadline) {
		w.state = timedOut
	}
}

func (w *ackWaiter) text() string { return strings.TrimSpace(w.response.String()) }
