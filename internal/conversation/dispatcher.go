// internal/conversation/dispatcher.go
package conversation

import (
	"context"
	"sync"
)

// Message is an inbound text from the messaging gateway.
type Message struct {
	UserID int64
	ChatID int64
	Text   string
}

// HandlerFunc processes one message.
type HandlerFunc func(ctx context.Context, msg Message)

type job struct {
	ctx context.Context
	msg Message
}

// Dispatcher runs messages of one user strictly in arrival order while
// different users are handled concurrently. A worker goroutine is started
// for a user when the first message arrives and exits once the queue drains.
type Dispatcher struct {
	handle HandlerFunc

	mu     sync.Mutex
	queues map[int64][]job
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher creates a Dispatcher that feeds handle.
func NewDispatcher(handle HandlerFunc) *Dispatcher {
	return &Dispatcher{
		handle: handle,
		queues: make(map[int64][]job),
	}
}

// Dispatch queues msg for its user. It returns false once Close was called.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return false
	}
	pending, running := d.queues[msg.UserID]
	d.queues[msg.UserID] = append(pending, job{ctx: ctx, msg: msg})
	if !running {
		d.wg.Add(1)
		go d.drain(msg.UserID)
	}
	return true
}

func (d *Dispatcher) drain(userID int64) {
	defer d.wg.Done()
	for {
		d.mu.Lock()
		pending := d.queues[userID]
		if len(pending) == 0 {
			delete(d.queues, userID)
			d.mu.Unlock()
			return
		}
		next := pending[0]
		d.queues[userID] = pending[1:]
		d.mu.Unlock()

		d.handle(next.ctx, next.msg)
	}
}

// Close stops accepting messages and waits for queued ones to finish.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.wg.Wait()
}
