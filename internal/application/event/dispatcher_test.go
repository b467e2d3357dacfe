package event

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDispatcher_RoutesByType(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var mu sync.Mutex
	var got []string
	d.Register(InvoiceCreated, func(ctx context.Context, ev Event) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, "created:"+ev.ID)
		return nil
	})
	d.Register(InvoiceDeleted, func(ctx context.Context, ev Event) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, "deleted:"+ev.ID)
		return nil
	})

	d.Emit(Event{ID: "i1", Type: InvoiceCreated})
	d.Emit(Event{ID: "i2", Type: UserCreated})
	d.Wait()

	assert.Equal(t, []string{"created:i1"}, got)
}

func TestDispatcher_AllHandlersForTypeRun(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var calls sync.WaitGroup
	calls.Add(2)
	d.Register(InvoiceCreated, func(ctx context.Context, ev Event) error {
		calls.Done()
		return nil
	})
	d.Register(InvoiceCreated, func(ctx context.Context, ev Event) error {
		calls.Done()
		return nil
	})

	d.Emit(Event{ID: "i1", Type: InvoiceCreated})
	d.Wait()
	calls.Wait()
}

func TestDispatcher_HandlerErrorDoesNotStopOthers(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var mu sync.Mutex
	ran := false
	d.Register(InvoiceCreated, func(ctx context.Context, ev Event) error {
		return errors.New("boom")
	})
	d.Register(InvoiceCreated, func(ctx context.Context, ev Event) error {
		mu.Lock()
		defer mu.Unlock()
		ran = true
		return nil
	})

	d.Emit(Event{ID: "i1", Type: InvoiceCreated})
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.True(t, ran)
}

func TestDispatcher_EmitWithNoHandlersIsNoop(t *testing.T) {
	d := NewDispatcher(zap.NewNop())
	d.Emit(Event{ID: "i1", Type: "invoices.updated"})
	d.Wait()
}

func TestDispatcher_SetsOccurredAt(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	var mu sync.Mutex
	var seen Event
	d.Register(UserCreated, func(ctx context.Context, ev Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = ev
		return nil
	})

	d.Emit(Event{ID: "u1", Type: UserCreated})
	d.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.False(t, seen.OccurredAt.IsZero())
}
