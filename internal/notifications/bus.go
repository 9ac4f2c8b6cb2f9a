package notifications

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/angelmondragon/capstudio-backend/pkg/logger"
	"github.com/angelmondragon/capstudio-backend/pkg/metrics"
	"go.uber.org/multierr"
)

const (
	defaultBufferSize = 256
	defaultWorkers    = 2
	defaultTimeout    = 5 * time.Second
)

// Sink delivers one order event to an external destination.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event OrderEvent) error
}

// Options tunes the bus.
type Options struct {
	BufferSize int
	Workers    int
	Timeout    time.Duration
	Metrics    *metrics.NotificationMetrics
}

// Bus fans order events out to sinks on a fixed pool of workers.
// Publish never blocks: events that do not fit the buffer are dropped.
type Bus struct {
	logg    *logger.Logger
	sinks   []Sink
	metrics *metrics.NotificationMetrics
	timeout time.Duration
	workers int

	events chan OrderEvent

	mu      sync.RWMutex
	closed  bool
	started bool
	wg      sync.WaitGroup

	ctx    context.Context
	cancel context.CancelFunc
}

// NewBus builds a bus for the given sinks. A bus with no sinks accepts and discards events.
func NewBus(logg *logger.Logger, opts Options, sinks ...Sink) (*Bus, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.BufferSize <= 0 {
		opts.BufferSize = defaultBufferSize
	}
	if opts.Workers <= 0 {
		opts.Workers = defaultWorkers
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}

	active := make([]Sink, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			active = append(active, sink)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{
		logg:    logg,
		sinks:   active,
		metrics: opts.Metrics,
		timeout: opts.Timeout,
		workers: opts.Workers,
		events:  make(chan OrderEvent, opts.BufferSize),
		ctx:     ctx,
		cancel:  cancel,
	}, nil
}

// Start launches the workers. Calling it more than once is a no-op.
func (b *Bus) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started || b.closed {
		return
	}
	b.started = true
	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.run()
	}
}

// Publish enqueues the event without waiting. It reports whether the event was accepted.
func (b *Bus) Publish(ctx context.Context, event OrderEvent) bool {
	if b == nil {
		return false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.drop(ctx, event, "notification bus closed; event dropped")
		return false
	}
	select {
	case b.events <- event:
		return true
	default:
		b.drop(ctx, event, "notification buffer full; event dropped")
		return false
	}
}

// Stop closes the bus, waits for queued events to drain until ctx expires,
// then closes sinks that hold resources.
func (b *Bus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	close(b.events)
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	var err error
	select {
	case <-done:
	case <-ctx.Done():
		b.cancel()
		<-done
		err = multierr.Append(err, fmt.Errorf("draining notifications: %w", ctx.Err()))
	}
	b.cancel()

	for _, sink := range b.sinks {
		if closer, ok := sink.(io.Closer); ok {
			if cerr := closer.Close(); cerr != nil {
				err = multierr.Append(err, fmt.Errorf("closing %s sink: %w", sink.Name(), cerr))
			}
		}
	}
	return err
}

func (b *Bus) run() {
	defer b.wg.Done()
	for event := range b.events {
		if b.ctx.Err() != nil {
			b.drop(b.ctx, event, "notification bus cancelled; event dropped")
			continue
		}
		b.dispatch(event)
	}
}

func (b *Bus) dispatch(event OrderEvent) {
	ctx := b.logg.WithFields(b.ctx, map[string]any{
		"event_id":     event.EventID.String(),
		"event_type":   event.Type.String(),
		"order_number": event.OrderNumber,
		"tenant_id":    event.TenantID.String(),
	})
	for _, sink := range b.sinks {
		b.deliver(ctx, sink, event)
	}
}

func (b *Bus) deliver(ctx context.Context, sink Sink, event OrderEvent) {
	ctx = b.logg.WithField(ctx, "sink", sink.Name())
	started := time.Now()

	defer func() {
		if r := recover(); r != nil {
			b.metrics.ObserveDelivery(sink.Name(), metrics.ResultPanic, time.Since(started))
			b.logg.Error(ctx, "notification sink panicked", fmt.Errorf("panic: %v", r))
		}
	}()

	deliverCtx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	if err := sink.Deliver(deliverCtx, event); err != nil {
		b.metrics.ObserveDelivery(sink.Name(), metrics.ResultFailure, time.Since(started))
		if errors.Is(err, context.DeadlineExceeded) {
			b.logg.Warn(ctx, "notification delivery timed out")
			return
		}
		b.logg.Error(ctx, "notification delivery failed", err)
		return
	}
	b.metrics.ObserveDelivery(sink.Name(), metrics.ResultSuccess, time.Since(started))
	b.logg.Debug(ctx, "notification delivered")
}

func (b *Bus) drop(ctx context.Context, event OrderEvent, msg string) {
	b.metrics.IncDropped()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = b.logg.WithFields(ctx, map[string]any{
		"event_type":   event.Type.String(),
		"order_number": event.OrderNumber,
	})
	b.logg.Warn(ctx, msg)
}
