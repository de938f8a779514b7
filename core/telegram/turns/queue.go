// Package turns serialises update handling per chat. Updates of one chat run
// one after another in arrival order; different chats run concurrently.
package turns

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/m3rciful/cryptobot/core/logger"
)

var (
	// ErrClosed is returned by Submit after Close.
	ErrClosed = errors.New("turns: queue closed")
	// ErrBacklogFull means too many turns are waiting across all chats.
	ErrBacklogFull = errors.New("turns: backlog full")
)

const defaultBacklog = 1024

type lane struct {
	pending []func()
}

// Queue runs submitted functions on per-chat lanes. A lane owns a goroutine
// only while it has work.
type Queue struct {
	backlog int

	mu      sync.Mutex
	lanes   map[int64]*lane
	waiting int
	closed  bool
	wg      sync.WaitGroup
}

// New returns a queue accepting at most backlog waiting turns. Zero or
// negative selects the default.
func New(backlog int) *Queue {
	if backlog <= 0 {
		backlog = defaultBacklog
	}
	return &Queue{backlog: backlog, lanes: make(map[int64]*lane)}
}

// Submit appends fn to the lane of chatID.
func (q *Queue) Submit(chatID int64, fn func()) error {
	if fn == nil {
		return errors.New("turns: nil turn")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrClosed
	}
	if q.waiting >= q.backlog {
		return ErrBacklogFull
	}
	q.waiting++
	if l, ok := q.lanes[chatID]; ok {
		l.pending = append(l.pending, fn)
		return nil
	}
	l := &lane{pending: []func(){fn}}
	q.lanes[chatID] = l
	q.wg.Add(1)
	go q.drain(chatID, l)
	return nil
}

// Pending reports how many turns are waiting or running.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.waiting
}

func (q *Queue) drain(chatID int64, l *lane) {
	defer q.wg.Done()
	for {
		q.mu.Lock()
		if len(l.pending) == 0 {
			delete(q.lanes, chatID)
			q.mu.Unlock()
			return
		}
		fn := l.pending[0]
		l.pending[0] = nil
		l.pending = l.pending[1:]
		q.mu.Unlock()

		q.run(chatID, fn)

		q.mu.Lock()
		q.waiting--
		q.mu.Unlock()
	}
}

func (q *Queue) run(chatID int64, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error(context.Background(), logger.CompTurns, "turn.panic",
				slog.Int64("chat_id", chatID),
				slog.String("err", fmt.Sprint(r)),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()
	fn()
}

// Close rejects new turns and waits until the queued ones finish or ctx ends.
func (q *Queue) Close(ctx context.Context) error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
