// Package frame batches page geometry reads and writes so that within a frame
// every queued read runs before any write, regardless of who queued them.
package frame

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultFrame is frame duration used when none is configured.
const DefaultFrame = 16 * time.Millisecond

// maxCycles bounds read/write cycles of a single flush, callbacks which keep
// queuing each other are left for the next frame.
const maxCycles = 64

// Stats counts callbacks executed by the scheduler.
type Stats struct {
	Reads   int
	Writes  int
	Flushes int
}

type Scheduler struct {
	mu     sync.Mutex
	reads  []func()
	writes []func()
	stats  Stats
	frame  time.Duration
	wake   chan struct{}
	log    *zap.Logger
}

func New(frame time.Duration, log *zap.Logger) *Scheduler {
	if frame <= 0 {
		frame = DefaultFrame
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		frame: frame,
		wake:  make(chan struct{}, 1),
		log:   log.Named("frame"),
	}
}

// Measure queues a geometry read. Safe to call from any goroutine and from
// inside callbacks.
func (s *Scheduler) Measure(fn func()) {
	s.mu.Lock()
	s.reads = append(s.reads, fn)
	s.mu.Unlock()
	s.notify()
}

// Mutate queues a geometry write.
func (s *Scheduler) Mutate(fn func()) {
	s.mu.Lock()
	s.writes = append(s.writes, fn)
	s.mu.Unlock()
	s.notify()
}

func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pending returns number of queued callbacks.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reads) + len(s.writes)
}

func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Flush runs queued callbacks: reads first, then writes. Reads queued by
// reads run before pending writes, reads queued by writes run before writes
// queued by writes. Every batch counts against maxCycles, whatever is left
// then waits for the next frame.
func (s *Scheduler) Flush() {
	s.mu.Lock()
	s.stats.Flushes++
	s.mu.Unlock()

	for cycle := 0; cycle < maxCycles; cycle++ {
		if reads := s.take(&s.reads); len(reads) > 0 {
			s.run(reads, &s.stats.Reads)
			continue
		}
		writes := s.take(&s.writes)
		if len(writes) == 0 {
			return
		}
		s.run(writes, &s.stats.Writes)
	}
	if pending := s.Pending(); pending > 0 {
		s.log.Warn("Callbacks keep queuing each other, deferring to next frame", zap.Int("pending", pending))
		s.notify()
	}
}

func (s *Scheduler) take(queue *[]func()) []func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fns := *queue
	*queue = nil
	return fns
}

func (s *Scheduler) run(fns []func(), counter *int) {
	for _, fn := range fns {
		fn()
	}
	s.mu.Lock()
	*counter += len(fns)
	s.mu.Unlock()
}

// Run flushes queued callbacks once per frame until ctx is done. Frames with
// nothing queued are skipped.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Debug("Frame loop started", zap.Duration("frame", s.frame))
	defer func() {
		s.log.Debug("Frame loop stopped", zap.Int("pending", s.Pending()))
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}
		if s.Pending() == 0 {
			continue
		}

		frameStart := time.Now()
		s.Flush()

		// keep consistent frame rate
		if elapsed := time.Since(frameStart); elapsed < s.frame {
			select {
			case <-time.After(s.frame - elapsed):
			case <-ctx.Done():
				return
			}
		}
	}
}
