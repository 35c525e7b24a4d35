package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

var errWriterClosed = errors.New("logger: writer closed")

// lineWriter hands formatted lines to a single goroutine that owns the sinks.
// Lines are buffered and flushed whenever the queue runs dry, so bursts cost
// one syscall per sink instead of one per line.
type lineWriter struct {
	lines   chan []byte
	flushes chan chan error
	quit    chan struct{}
	stopped chan struct{}
	stop    sync.Once

	out *bufio.Writer

	mu  sync.Mutex
	err error
}

func newLineWriter(sinks []io.Writer, bufSize int) *lineWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	live := sinks[:0:0]
	for _, s := range sinks {
		if s != nil {
			live = append(live, s)
		}
	}
	w := &lineWriter{
		lines:   make(chan []byte, 512),
		flushes: make(chan chan error),
		quit:    make(chan struct{}),
		stopped: make(chan struct{}),
		out:     bufio.NewWriterSize(io.MultiWriter(live...), bufSize),
	}
	go w.run()
	return w
}

func (w *lineWriter) run() {
	defer close(w.stopped)
	for {
		select {
		case line := <-w.lines:
			w.put(line)
			if len(w.lines) == 0 {
				w.fail(w.out.Flush())
			}
		case ack := <-w.flushes:
			ack <- w.drain()
		case <-w.quit:
			w.fail(w.drain())
			return
		}
	}
}

// drain writes every queued line and flushes the buffer.
func (w *lineWriter) drain() error {
	for {
		select {
		case line := <-w.lines:
			w.put(line)
		default:
			return w.out.Flush()
		}
	}
}

func (w *lineWriter) put(line []byte) {
	if _, err := w.out.Write(line); err != nil {
		w.fail(err)
	}
}

// Write queues a copy of line. It blocks while the queue is full and fails
// once the writer is closed.
func (w *lineWriter) Write(line []byte) error {
	if err := w.Err(); err != nil {
		return err
	}
	if len(line) == 0 {
		return nil
	}
	select {
	case <-w.quit:
		return errWriterClosed
	case w.lines <- append([]byte(nil), line...):
		return nil
	}
}

// Flush blocks until everything queued before the call reached the sinks.
func (w *lineWriter) Flush() error {
	ack := make(chan error, 1)
	select {
	case w.flushes <- ack:
		return <-ack
	case <-w.stopped:
		return w.Err()
	}
}

// Close drains the queue, stops the goroutine, and returns the first sink error.
func (w *lineWriter) Close() error {
	w.stop.Do(func() { close(w.quit) })
	<-w.stopped
	return w.Err()
}

// Err returns the first error any sink reported.
func (w *lineWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *lineWriter) fail(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	if w.err == nil {
		w.err = err
	}
	w.mu.Unlock()
}
