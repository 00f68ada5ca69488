package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Buffer delivers entries to its transporters from a background goroutine.
// When the queue is full the oldest queued entry is dropped.
type Buffer struct {
	queue        chan Entry
	transporters []Transporter
	fallback     io.Writer

	dropped atomic.Int64
	failed  atomic.Int64
	closed  atomic.Bool

	stop     chan struct{}
	finished chan struct{}
	once     sync.Once
}

// NewBuffer starts a buffer holding up to capacity pending entries.
func NewBuffer(capacity int, transporters ...Transporter) *Buffer {
	b := &Buffer{
		queue:        make(chan Entry, max(capacity, 1)),
		transporters: transporters,
		fallback:     os.Stderr,
		stop:         make(chan struct{}),
		finished:     make(chan struct{}),
	}
	go b.run()
	return b
}

// Send queues entry. It never blocks.
func (b *Buffer) Send(entry Entry) {
	if b.closed.Load() {
		return
	}
	for range 2 {
		select {
		case b.queue <- entry:
			return
		default:
		}
		select {
		case <-b.queue:
			b.dropped.Add(1)
		default:
		}
	}
	b.dropped.Add(1)
}

// Dropped returns how many entries were discarded on overflow.
func (b *Buffer) Dropped() int64 { return b.dropped.Load() }

// Failed returns how many transporter writes returned an error.
func (b *Buffer) Failed() int64 { return b.failed.Load() }

// Close flushes pending entries and closes the transporters. Later calls
// are no-ops.
func (b *Buffer) Close() {
	b.once.Do(func() {
		b.closed.Store(true)
		close(b.stop)
		<-b.finished
		for {
			select {
			case entry := <-b.queue:
				b.deliver(entry)
			default:
				for _, t := range b.transporters {
					_ = t.Close()
				}
				return
			}
		}
	})
}

func (b *Buffer) run() {
	defer close(b.finished)
	for {
		select {
		case entry := <-b.queue:
			b.deliver(entry)
		case <-b.stop:
			return
		}
	}
}

func (b *Buffer) deliver(entry Entry) {
	for _, t := range b.transporters {
		if err := t.Write(entry); err != nil {
			b.failed.Add(1)
			fmt.Fprintf(b.fallback, "log: transporter %q: %v\n", t.Name(), err)
		}
	}
}
