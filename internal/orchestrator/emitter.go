package orchestrator

import (
	"sync/atomic"
	"time"

	"github.com/agenticwork/conductor/pkg/models"
)

// eventBufferSize is the emitter's channel capacity. Slow consumers cause
// drops, never backpressure into the executor.
const eventBufferSize = 256

// Emitter fans orchestration lifecycle events out to an observer channel.
// Emitting is strictly best-effort: when nobody is draining the channel the
// event is dropped and counted. Correctness never depends on delivery.
type Emitter struct {
	events  chan models.Event
	dropped atomic.Uint64
	closed  atomic.Bool
}

// NewEmitter creates a new event emitter.
func NewEmitter() *Emitter {
	return &Emitter{
		events: make(chan models.Event, eventBufferSize),
	}
}

// Emit publishes an event without blocking. The timestamp is stamped here
// if the caller left it zero.
func (e *Emitter) Emit(event models.Event) {
	if e == nil || e.closed.Load() {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case e.events <- event:
	default:
		e.dropped.Add(1)
	}
}

// Events returns the channel for receiving events.
func (e *Emitter) Events() <-chan models.Event {
	return e.events
}

// DroppedCount returns how many events were discarded because the buffer
// was full.
func (e *Emitter) DroppedCount() uint64 {
	return e.dropped.Load()
}

// Close stops the emitter and closes the event channel.
// Callers must ensure no Emit is in flight; the orchestrator closes the
// emitter only after execution has fully settled.
func (e *Emitter) Close() {
	if e.closed.CompareAndSwap(false, true) {
		close(e.events)
	}
}
