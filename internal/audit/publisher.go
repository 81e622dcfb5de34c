package audit

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"shoplist/pkg/requestcontext"
)

// DefaultBufferSize bounds the number of events waiting for the worker.
const DefaultBufferSize = 1024

// Publisher enqueues events for asynchronous delivery. Emit never blocks the
// request path: when the buffer is full the event is dropped and counted.
type Publisher struct {
	inbox   chan Event
	logger  *slog.Logger
	dropped atomic.Int64

	mu     sync.RWMutex
	closed bool
}

func NewPublisher(bufferSize int, logger *slog.Logger) *Publisher {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{inbox: make(chan Event, bufferSize), logger: logger}
}

// Emit fills timestamp, request id and client from ctx and enqueues the event.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Client == "" {
		event.Client = requestcontext.Device(ctx)
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		p.dropped.Add(1)
		return
	}

	select {
	case p.inbox <- event:
	default:
		p.dropped.Add(1)
		p.logger.WarnContext(ctx, "audit buffer full, event dropped",
			"action", event.Action,
			"list_id", event.ListID,
			"request_id", event.RequestID,
		)
	}
}

// Inbox is the channel the worker drains.
func (p *Publisher) Inbox() <-chan Event {
	return p.inbox
}

// Dropped returns the number of events discarded because the buffer was full.
func (p *Publisher) Dropped() int64 {
	return p.dropped.Load()
}

// Close stops accepting events; the worker drains what is buffered and exits.
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.inbox)
	}
}
