package progress

import (
	"log"
	"sync"

	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

// Writer is the asynchronous write-through dispatcher. Mutations hand it a
// snapshot and return immediately; a single background goroutine saves the
// most recent snapshot through the gateway. Coalescing to the latest
// snapshot keeps ordering trivially FIFO per word, last write wins.
//
// A failed save never reaches the interactive loop: it is logged, the
// snapshot is kept, and the next write-through (or Flush) retries it.
type Writer struct {
	gateway Gateway

	mu      sync.Mutex
	cond    *sync.Cond
	pending map[uint]entities.WordStat // latest unsaved snapshot, nil when none
	failed  map[uint]entities.WordStat // last snapshot whose save failed
	writing bool
	closed  bool
	lastErr error
	done    chan struct{}
}

// NewWriter starts the background save loop.
func NewWriter(gateway Gateway) *Writer {
	w := &Writer{
		gateway: gateway,
		done:    make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)
	go w.loop()
	return w
}

// Enqueue hands the writer a fresh snapshot. Never blocks on I/O; a newer
// snapshot supersedes any pending or previously failed one.
func (w *Writer) Enqueue(snapshot map[uint]entities.WordStat) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending = snapshot
	w.failed = nil
	w.cond.Broadcast()
}

// Flush blocks until every enqueued snapshot has been saved. A snapshot
// whose background save failed is retried synchronously here. Used as the
// drain barrier at session transitions and shutdown.
func (w *Writer) Flush() error {
	w.mu.Lock()
	for w.pending != nil || w.writing {
		w.cond.Wait()
	}
	retry := w.failed
	w.failed = nil
	w.mu.Unlock()

	if retry != nil {
		if err := w.gateway.Save(retry); err != nil {
			w.mu.Lock()
			w.failed = retry
			w.lastErr = err
			w.mu.Unlock()
			return err
		}
		// The retry made the snapshot durable, so the earlier failure is
		// recovered and must not be reported.
		w.mu.Lock()
		w.lastErr = nil
		w.mu.Unlock()
	}

	w.mu.Lock()
	err := w.lastErr
	w.lastErr = nil
	w.mu.Unlock()
	return err
}

// Close drains pending writes and stops the background loop. The writer must
// not be used afterwards.
func (w *Writer) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()

	<-w.done
	return w.Flush()
}

func (w *Writer) loop() {
	defer close(w.done)
	for {
		w.mu.Lock()
		for w.pending == nil && !w.closed {
			w.cond.Wait()
		}
		if w.pending == nil && w.closed {
			w.mu.Unlock()
			return
		}
		snapshot := w.pending
		w.pending = nil
		w.writing = true
		w.mu.Unlock()

		err := w.gateway.Save(snapshot)

		w.mu.Lock()
		w.writing = false
		if err != nil {
			log.Printf("Progress save failed (will retry on next write): %v", err)
			w.lastErr = err
			if w.pending == nil {
				w.failed = snapshot
			}
		} else {
			// A successful save supersedes any older failure.
			w.lastErr = nil
			w.failed = nil
		}
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}
