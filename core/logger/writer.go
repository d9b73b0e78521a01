package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// asyncWriter fans log lines out to one or more sinks from a single goroutine,
// keeping handler call sites free of blocking file writes.
type asyncWriter struct {
	queue    chan []byte
	flushReq chan chan error
	done     chan struct{}
	once     sync.Once

	mu       sync.Mutex
	sinks    []*bufio.Writer
	writeErr error
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	sinks := make([]*bufio.Writer, 0, len(writers))
	for _, w := range writers {
		if w != nil {
			sinks = append(sinks, bufio.NewWriterSize(w, bufSize))
		}
	}
	aw := &asyncWriter{
		queue:    make(chan []byte, 256),
		flushReq: make(chan chan error),
		done:     make(chan struct{}),
		sinks:    sinks,
	}
	go aw.loop()
	return aw
}

func (w *asyncWriter) loop() {
	for {
		select {
		case data, ok := <-w.queue:
			if !ok {
				w.flushAll()
				close(w.done)
				return
			}
			if len(data) == 0 {
				continue
			}
			if err := w.writeAll(data); err != nil {
				w.setErr(err)
			}
		case ack := <-w.flushReq:
			ack <- w.flushAll()
		}
	}
}

// Write enqueues the payload for asynchronous fan-out to all sinks.
// When the queue is full it blocks rather than dropping lines.
func (w *asyncWriter) Write(p []byte) error {
	if err := w.getErr(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	data := make([]byte, len(p))
	copy(data, p)
	w.queue <- data
	return nil
}

// Flush waits for the writer to flush all buffered content to sinks.
func (w *asyncWriter) Flush() error {
	if err := w.getErr(); err != nil {
		return err
	}
	ack := make(chan error, 1)
	w.flushReq <- ack
	return <-ack
}

// Close drains the queue and reports the first encountered write error.
func (w *asyncWriter) Close() error {
	w.once.Do(func() {
		close(w.queue)
	})
	<-w.done
	return w.getErr()
}

func (w *asyncWriter) writeAll(p []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sink := range w.sinks {
		if _, err := sink.Write(p); err != nil {
			return err
		}
		if err := sink.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (w *asyncWriter) flushAll() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) getErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeErr
}

func (w *asyncWriter) setErr(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.writeErr == nil {
		w.writeErr = err
	}
}
