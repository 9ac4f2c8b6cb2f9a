package notifications

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/angelmondragon/capstudio-backend/pkg/enums"
	"github.com/angelmondragon/capstudio-backend/pkg/logger"
	"github.com/angelmondragon/capstudio-backend/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	name string
	mu   sync.Mutex
	got  []OrderEvent
	err  error
	hits chan struct{}

	closed bool
}

func newRecordingSink(name string) *recordingSink {
	return &recordingSink{name: name, hits: make(chan struct{}, 16)}
}

func (s *recordingSink) Name() string { return s.name }

func (s *recordingSink) Deliver(_ context.Context, event OrderEvent) error {
	s.mu.Lock()
	s.got = append(s.got, event)
	s.mu.Unlock()
	s.hits <- struct{}{}
	return s.err
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSink) events() []OrderEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]OrderEvent(nil), s.got...)
}

type panicSink struct{}

func (panicSink) Name() string { return "panic" }

func (panicSink) Deliver(context.Context, OrderEvent) error { panic("boom") }

type blockingSink struct{}

func (blockingSink) Name() string { return "blocking" }

func (blockingSink) Deliver(ctx context.Context, _ OrderEvent) error {
	<-ctx.Done()
	return ctx.Err()
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func waitHit(t *testing.T, sink *recordingSink) {
	t.Helper()
	select {
	case <-sink.hits:
	case <-time.After(2 * time.Second):
		t.Fatalf("sink %s never received the event", sink.name)
	}
}

func TestNewBusRequiresLogger(t *testing.T) {
	_, err := NewBus(nil, Options{})
	require.Error(t, err)
}

func TestBusDeliversToEverySink(t *testing.T) {
	first := newRecordingSink("first")
	second := newRecordingSink("second")
	second.err = errors.New("downstream unavailable")

	bus, err := NewBus(testLogger(), Options{Workers: 1}, first, nil, second)
	require.NoError(t, err)
	bus.Start()

	event := NewOrderEvent(enums.OrderEventCreated)
	event.OrderNumber = "CA-20260101-001"
	require.True(t, bus.Publish(context.Background(), event))

	waitHit(t, first)
	waitHit(t, second)
	require.NoError(t, bus.Stop(context.Background()))

	require.Len(t, first.events(), 1)
	assert.Equal(t, "CA-20260101-001", first.events()[0].OrderNumber)
	assert.True(t, first.closed)
	assert.True(t, second.closed)
}

func TestBusRecoversFromPanickingSink(t *testing.T) {
	after := newRecordingSink("after")
	reg := prometheus.NewRegistry()
	bus, err := NewBus(testLogger(), Options{Workers: 1, Metrics: metrics.NewNotificationMetrics(reg)}, panicSink{}, after)
	require.NoError(t, err)
	bus.Start()

	require.True(t, bus.Publish(context.Background(), NewOrderEvent(enums.OrderEventShipped)))
	waitHit(t, after)
	require.NoError(t, bus.Stop(context.Background()))
}

func TestBusDropsWhenBufferFull(t *testing.T) {
	sink := newRecordingSink("sink")
	bus, err := NewBus(testLogger(), Options{BufferSize: 1, Workers: 1}, sink)
	require.NoError(t, err)

	// Not started, so the single slot stays occupied.
	assert.True(t, bus.Publish(context.Background(), NewOrderEvent(enums.OrderEventCreated)))
	assert.False(t, bus.Publish(context.Background(), NewOrderEvent(enums.OrderEventCreated)))

	bus.Start()
	waitHit(t, sink)
	require.NoError(t, bus.Stop(context.Background()))
	assert.Len(t, sink.events(), 1)
}

func TestBusRejectsAfterStop(t *testing.T) {
	bus, err := NewBus(testLogger(), Options{})
	require.NoError(t, err)
	bus.Start()
	require.NoError(t, bus.Stop(context.Background()))
	require.NoError(t, bus.Stop(context.Background()))

	assert.False(t, bus.Publish(context.Background(), NewOrderEvent(enums.OrderEventCancelled)))
}

func TestBusStopHonoursDeadline(t *testing.T) {
	bus, err := NewBus(testLogger(), Options{Workers: 1, Timeout: time.Minute}, blockingSink{})
	require.NoError(t, err)
	bus.Start()
	require.True(t, bus.Publish(context.Background(), NewOrderEvent(enums.OrderEventCreated)))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	err = bus.Stop(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestBusDeliveryTimeout(t *testing.T) {
	after := newRecordingSink("after")
	bus, err := NewBus(testLogger(), Options{Workers: 1, Timeout: 20 * time.Millisecond}, blockingSink{}, after)
	require.NoError(t, err)
	bus.Start()

	require.True(t, bus.Publish(context.Background(), NewOrderEvent(enums.OrderEventStatusChanged)))
	waitHit(t, after)
	require.NoError(t, bus.Stop(context.Background()))
}

func TestNilBusPublish(t *testing.T) {
	var bus *Bus
	assert.False(t, bus.Publish(context.Background(), NewOrderEvent(enums.OrderEventCreated)))
}
