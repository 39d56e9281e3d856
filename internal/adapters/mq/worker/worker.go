// Package worker drains the audit queue into a sink.
//
// Delivery is best-effort by contract: a sink failure or panic is recorded
// and logged, never propagated. The mutation that produced the entry has
// long since returned by the time a worker sees it.
package worker

import (
	"context"
	"fmt"
	"strconv"

	"juryd/internal/adapters/mq/queue"
	"juryd/pkg/logger"
	"juryd/pkg/metrics"
)

// Entry is what workers read off the queue.
type Entry = queue.Entry

// Sink receives audit entries. Implementations live in the audit package;
// the interface is declared here, next to its consumer.
type Sink interface {
	Notify(ctx context.Context, e Entry) error
}

// Queue defines how workers receive entries.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Entry
}

// Worker processes audit entries from the queue.
type Worker struct {
	queue  Queue
	sink   Sink
	name   string
	logger logger.Logger

	shutdown chan struct{}
	done     chan struct{}
}

// NewWorker creates a new audit worker with configuration options.
func NewWorker(q Queue, sink Sink, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		sink:     sink,
		name:     "audit-worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.logger == nil {
		w.logger = logger.Get().Named(w.name)
	}
	return w
}

// Run starts the worker loop until ctx is canceled, the queue closes, or
// Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	entries := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case e, ok := <-entries:
			if !ok {
				return
			}
			w.deliver(ctx, e)
		}
	}
}

// Shutdown stops the worker, waiting for the in-flight entry.
func (w *Worker) Shutdown(ctx context.Context) error {
	close(w.shutdown)
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// deliver hands one entry to the sink, swallowing failures and panics.
func (w *Worker) deliver(ctx context.Context, e Entry) {
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordAuditSinkError()
			w.logger.Error(ctx, "audit sink panicked",
				logger.String("target", e.TargetID),
				logger.Any("panic", r),
			)
		}
	}()

	if err := w.sink.Notify(ctx, e); err != nil {
		metrics.RecordAuditSinkError()
		w.logger.Error(ctx, "audit sink failed",
			logger.String("action", string(e.Action)),
			logger.String("target", e.TargetID),
			logger.Error(err),
		)
		return
	}
	metrics.RecordAuditPublished()
}

// Pool manages multiple audit workers over one queue.
type Pool struct {
	workers []*Worker
}

// NewPool creates a worker pool of the given size.
func NewPool(workerCount int, q Queue, sink Sink) *Pool {
	if workerCount < 1 {
		workerCount = 1
	}
	p := &Pool{workers: make([]*Worker, workerCount)}
	for i := 0; i < workerCount; i++ {
		p.workers[i] = NewWorker(q, sink, WithName("audit-worker-"+strconv.Itoa(i)))
	}
	return p
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop shuts down all workers, bounded by ctx.
func (p *Pool) Stop(ctx context.Context) {
	for _, w := range p.workers {
		_ = w.Shutdown(ctx)
	}
}
