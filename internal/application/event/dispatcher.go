package event

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Handler reacts to a single document event. Handlers are stateless; each
// invocation is independent and may run concurrently with any other.
type Handler func(ctx context.Context, ev Event) error

// Dispatcher maps event types to registered handlers and runs each handler
// invocation in its own goroutine. There is no ordering guarantee across
// events or across handlers of the same event, and no retry: a failed handler
// is logged and dropped. Callers that need redelivery re-emit the event with
// the same ID; the handlers' conditional writes make that safe.
type Dispatcher struct {
	mu         sync.RWMutex
	handlerFor map[string][]Handler

	wg      sync.WaitGroup
	timeout time.Duration
	log     *zap.Logger
}

func NewDispatcher(log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlerFor: make(map[string][]Handler),
		timeout:    30 * time.Second,
		log:        log,
	}
}

// Register adds a handler for the given event type. Not safe to call
// concurrently with Emit; do all registration during startup.
func (d *Dispatcher) Register(eventType string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlerFor[eventType] = append(d.handlerFor[eventType], h)
}

// Emit dispatches the event to every handler registered for its type, one
// goroutine per handler. The dispatch is detached from the caller's request
// context: the originating write has already committed, so a client
// disconnect must not cancel the fan-out.
func (d *Dispatcher) Emit(ev Event) {
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}
	d.mu.RLock()
	handlers := d.handlerFor[ev.Type]
	d.mu.RUnlock()

	for _, h := range handlers {
		h := h
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
			defer cancel()
			if err := h(ctx, ev); err != nil {
				d.log.Error("event handler failed",
					zap.String("event_type", ev.Type),
					zap.String("event_id", ev.ID),
					zap.Error(err))
			}
		}()
	}
}

// Wait blocks until all in-flight handler invocations finish. Called during
// shutdown so committed events are not lost with the process.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}
