package dispatch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/sitecard/notify-relay/internal/sender"
)

// Config holds worker tuning parameters.
type Config struct {
	// PollInterval bounds how long an idle worker sleeps between queue
	// checks when no wake signal arrives.
	PollInterval time.Duration
	// SendTimeout bounds a single delivery attempt.
	SendTimeout time.Duration
	// ShutdownTimeout bounds how long Stop waits for the drain.
	ShutdownTimeout time.Duration
}

// Worker drains the delivery queue in the background. Exactly one consumer
// goroutine runs per Worker; a failed send is logged and the item discarded.
type Worker struct {
	queue   *Queue
	sender  sender.Sender
	config  Config
	log     zerolog.Logger
	started atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewWorker creates a Worker over the given queue and sender.
func NewWorker(queue *Queue, snd sender.Sender, cfg Config, log zerolog.Logger) *Worker {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 1 * time.Second
	}
	if cfg.SendTimeout <= 0 {
		cfg.SendTimeout = 10 * time.Second
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 30 * time.Second
	}
	return &Worker{
		queue:  queue,
		sender: snd,
		config: cfg,
		log:    log,
	}
}

// Start launches the worker goroutine. Calling Start again is a no-op.
func (w *Worker) Start(ctx context.Context) {
	if !w.started.CompareAndSwap(false, true) {
		return
	}

	ctx, w.cancel = context.WithCancel(ctx)

	w.wg.Add(1)
	go w.run(ctx)

	w.log.Info().
		Str("sender", w.sender.GetName()).
		Dur("poll_interval", w.config.PollInterval).
		Msg("delivery worker started")
}

// Stop signals the worker to stop and waits up to the shutdown timeout for
// it to drain remaining items.
func (w *Worker) Stop() {
	if !w.started.Load() || w.cancel == nil {
		return
	}
	w.cancel()

	done := make(chan struct{})
	go func() {
		w.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		w.log.Info().Msg("delivery worker stopped gracefully")
	case <-time.After(w.config.ShutdownTimeout):
		w.log.Warn().Msg("delivery worker shutdown timed out")
	}
}

// run is the worker's main loop: drain the queue, then wait for a wake
// signal or the idle poll interval.
func (w *Worker) run(ctx context.Context) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		for {
			item, ok := w.queue.Dequeue()
			if !ok {
				break
			}
			w.deliver(item)
		}

		select {
		case <-ctx.Done():
			w.drain()
			w.log.Info().Msg("delivery worker stopping")
			return
		case <-w.queue.wake:
		case <-ticker.C:
		}
	}
}

// drain attempts delivery of everything left in the queue during shutdown,
// bounded per item by the send timeout.
func (w *Worker) drain() {
	for {
		item, ok := w.queue.Dequeue()
		if !ok {
			return
		}
		w.deliver(item)
	}
}

// deliver attempts a single send. Failure ends this item's processing; it
// is never re-enqueued and never affects subsequent items.
func (w *Worker) deliver(item Item) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), w.config.SendTimeout)
	err := w.sender.Send(ctx, item.RecipientID, item.Text)
	cancel()

	DeliveryDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		w.log.Warn().
			Err(err).
			Str("item_id", item.ID).
			Str("recipient_id", item.RecipientID).
			Msg("delivery failed, discarding item")
		ItemsProcessedTotal.WithLabelValues("failed").Inc()
		return
	}

	w.log.Info().
		Str("item_id", item.ID).
		Str("recipient_id", item.RecipientID).
		Msg("delivery succeeded")
	ItemsProcessedTotal.WithLabelValues("sent").Inc()
}
