package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
)

// Dispatcher queues messages for a background worker that delivers them through a Gateway
// with bounded retries. Send never blocks on delivery.
type Dispatcher struct {
	gateway  Gateway
	attempts int
	backoff  time.Duration
	timeout  time.Duration

	queue  chan Message
	done   chan struct{}
	mu     sync.RWMutex
	closed bool
}

// DispatcherOption customizes a Dispatcher.
type DispatcherOption func(*Dispatcher)

// WithRetry sets the number of delivery attempts and the base delay between them.
func WithRetry(attempts int, backoff time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if attempts > 0 {
			d.attempts = attempts
		}
		d.backoff = backoff
	}
}

// WithQueueSize sets the capacity of the pending message queue.
func WithQueueSize(n int) DispatcherOption {
	return func(d *Dispatcher) {
		if n > 0 {
			d.queue = make(chan Message, n)
		}
	}
}

// NewDispatcher starts the delivery worker.
func NewDispatcher(gateway Gateway, opts ...DispatcherOption) *Dispatcher {
	d := &Dispatcher{
		gateway:  gateway,
		attempts: 3,
		backoff:  2 * time.Second,
		timeout:  30 * time.Second,
		queue:    make(chan Message, 100),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}

	go d.worker()

	return d
}

// Send enqueues msg. When the queue is full or the dispatcher is closed, msg is delivered inline.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	d.mu.RLock()
	if !d.closed {
		select {
		case d.queue <- msg:
			d.mu.RUnlock()
			return nil
		default:
		}
	}
	d.mu.RUnlock()

	slog.WarnContext(ctx, "notification queue unavailable, delivering inline", "kind", msg.Kind)
	return d.deliver(context.WithoutCancel(ctx), msg)
}

// Close stops accepting queued messages and waits for pending ones to be delivered.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		_ = d.deliver(context.Background(), msg)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) error {
	var err error
	for attempt := 1; attempt <= d.attempts; attempt++ {
		sendCtx, cancel := context.WithTimeout(ctx, d.timeout)
		err = d.gateway.Send(sendCtx, msg)
		cancel()
		if err == nil {
			return nil
		}

		slog.Warn("notification delivery failed",
			"kind", msg.Kind,
			"recipients", len(msg.To),
			"attempt", attempt,
			"error", err,
		)
		if attempt < d.attempts && d.backoff > 0 {
			time.Sleep(d.backoff * time.Duration(attempt))
		}
	}

	slog.Error("notification dropped", "kind", msg.Kind, "recipients", len(msg.To), "error", err)
	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("notification_kind", string(msg.Kind))
		sentry.CaptureException(err)
	})
	return err
}
