package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

const defaultQueueSize = 64

// Dispatcher delivers alerts asynchronously. Delivery failures are logged
// and never reach the analysis path.
type Dispatcher struct {
	notifiers []Notifier
	queue     chan Alert
	logger    *zerolog.Logger
	wg        sync.WaitGroup
}

// NewDispatcher creates a Dispatcher over the configured notifiers.
// Returns nil if notifiers is empty (callers should nil-check).
func NewDispatcher(notifiers []Notifier, queueSize int, logger *zerolog.Logger) *Dispatcher {
	if len(notifiers) == 0 {
		return nil
	}
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	return &Dispatcher{
		notifiers: notifiers,
		queue:     make(chan Alert, queueSize),
		logger:    logger,
	}
}

// Start launches the delivery worker. It stops when ctx is cancelled;
// alerts still queued at that point are dropped.
func (d *Dispatcher) Start(ctx context.Context) {
	if d == nil {
		return
	}
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case alert := <-d.queue:
				d.deliver(ctx, alert)
			}
		}
	}()
}

// Enqueue hands an alert to the worker without blocking. A full queue
// drops the alert with a warning.
func (d *Dispatcher) Enqueue(alert Alert) bool {
	if d == nil {
		return false
	}
	select {
	case d.queue <- alert:
		return true
	default:
		d.logger.Warn().
			Str("request_id", alert.RequestID).
			Msg("alert queue full, dropping alert")
		return false
	}
}

// Wait blocks until the delivery worker has exited.
func (d *Dispatcher) Wait() {
	if d == nil {
		return
	}
	d.wg.Wait()
}

func (d *Dispatcher) deliver(ctx context.Context, alert Alert) {
	for _, n := range d.notifiers {
		if err := n.Notify(ctx, alert); err != nil {
			d.logger.Error().
				Err(err).
				Str("request_id", alert.RequestID).
				Str("severity", alert.Severity).
				Msg("guardian alert delivery failed")
		}
	}
}
