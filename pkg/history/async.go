package history

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrClosed is returned for records made after Close
var ErrClosed = errors.New("history recorder is closed")

const asyncBufferSize = 256
const recordTimeout = time.Second * 10

// Async records on a background goroutine so callers never wait on I/O
// Records are dropped, with a warning, when the buffer is full.
type Async struct {
	recorder Recorder
	log      logrus.FieldLogger
	queue    chan func(ctx context.Context) error
	done     chan bool
	once     sync.Once

	lock   sync.RWMutex
	closed bool
}

// NewAsync starts the background goroutine
func NewAsync(recorder Recorder, log logrus.FieldLogger) *Async {
	a := &Async{
		recorder: recorder,
		log:      log,
		queue:    make(chan func(ctx context.Context) error, asyncBufferSize),
		done:     make(chan bool),
	}

	go a.runLoop()
	return a
}

func (a *Async) runLoop() {
	defer close(a.done)

	for fn := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := fn(ctx); err != nil {
			a.log.WithError(err).Error("could not record history")
		}

		cancel()
	}
}

func (a *Async) enqueue(kind string, fn func(ctx context.Context) error) error {
	a.lock.RLock()
	defer a.lock.RUnlock()

	if a.closed {
		return ErrClosed
	}

	select {
	case a.queue <- fn:
	default:
		a.log.WithField("kind", kind).Warn("history buffer is full, dropping record")
	}

	return nil
}

// RecordHand implements Recorder
func (a *Async) RecordHand(_ context.Context, hand *Hand) error {
	return a.enqueue("hand", func(ctx context.Context) error {
		return a.recorder.RecordHand(ctx, hand)
	})
}

// RecordSettlement implements Recorder
func (a *Async) RecordSettlement(_ context.Context, s *Settlement) error {
	return a.enqueue("settlement", func(ctx context.Context) error {
		return a.recorder.RecordSettlement(ctx, s)
	})
}

// Close flushes queued records and stops the goroutine
func (a *Async) Close() {
	a.once.Do(func() {
		a.lock.Lock()
		a.closed = true
		close(a.queue)
		a.lock.Unlock()
	})

	<-a.done
}
