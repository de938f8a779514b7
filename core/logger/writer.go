package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

var errWriterClosed = errors.New("logger: writer closed")

// request is either a log line or, when ack is set, a flush barrier.
type request struct {
	line []byte
	ack  chan error
}

// asyncWriter hands lines to a single goroutine that copies them to every
// sink. After the first sink failure all calls report that error.
type asyncWriter struct {
	reqs chan request
	done chan struct{}

	// mu guards closed against concurrent sends on reqs.
	mu     sync.RWMutex
	closed bool

	sinks []*bufio.Writer
	err   atomic.Pointer[error]
}

func newAsyncWriter(outputs []io.Writer, bufSize int) *asyncWriter {
	w := &asyncWriter{
		reqs: make(chan request, 256),
		done: make(chan struct{}),
	}
	for _, out := range outputs {
		if out == nil {
			continue
		}
		w.sinks = append(w.sinks, bufio.NewWriterSize(out, max(bufSize, 4096)))
	}
	go w.run()
	return w
}

func (w *asyncWriter) run() {
	defer close(w.done)
	for req := range w.reqs {
		if req.ack != nil {
			req.ack <- w.fail(w.flush())
			continue
		}
		w.fail(w.write(req.line))
	}
	w.fail(w.flush())
}

// Write queues a copy of p. It blocks while the queue is full.
func (w *asyncWriter) Write(p []byte) error {
	if err := w.sticky(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return errWriterClosed
	}
	w.reqs <- request{line: append([]byte(nil), p...)}
	return nil
}

// Flush returns once every line queued before it reached the sinks.
func (w *asyncWriter) Flush() error {
	ack := make(chan error, 1)
	w.mu.RLock()
	if w.closed {
		w.mu.RUnlock()
		<-w.done
		return w.sticky()
	}
	w.reqs <- request{ack: ack}
	w.mu.RUnlock()
	return <-ack
}

// Close drains pending lines and stops the writer goroutine.
func (w *asyncWriter) Close() error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.reqs)
	}
	w.mu.Unlock()
	<-w.done
	return w.sticky()
}

func (w *asyncWriter) write(line []byte) error {
	for _, sink := range w.sinks {
		if _, err := sink.Write(line); err != nil {
			return err
		}
		if err := sink.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (w *asyncWriter) flush() error {
	var errs []error
	for _, sink := range w.sinks {
		errs = append(errs, sink.Flush())
	}
	return errors.Join(errs...)
}

// fail records the first error and returns whichever error is sticky.
func (w *asyncWriter) fail(err error) error {
	if err != nil {
		w.err.CompareAndSwap(nil, &err)
	}
	return w.sticky()
}

func (w *asyncWriter) sticky() error {
	if p := w.err.Load(); p != nil {
		return *p
	}
	return nil
}
