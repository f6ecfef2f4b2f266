package frame

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func TestFlush_ReadsBeforeWrites(t *testing.T) {
	s := New(0, zaptest.NewLogger(t))
	var order []string

	s.Mutate(func() { order = append(order, "w1") })
	s.Measure(func() {
		order = append(order, "r1")
		s.Measure(func() { order = append(order, "r1.1") })
	})
	s.Mutate(func() {
		order = append(order, "w2")
		s.Measure(func() { order = append(order, "r2.1") })
		s.Mutate(func() { order = append(order, "w2.1") })
	})
	s.Measure(func() { order = append(order, "r2") })

	require.Equal(t, 5, s.Pending())
	s.Flush()

	assert.Equal(t, []string{"r1", "r2", "r1.1", "w1", "w2", "r2.1", "w2.1"}, order)
	assert.Zero(t, s.Pending())
	assert.Equal(t, Stats{Reads: 4, Writes: 3, Flushes: 1}, s.Stats())
}

func TestFlush_Empty(t *testing.T) {
	s := New(time.Millisecond, nil)
	s.Flush()
	assert.Equal(t, Stats{Flushes: 1}, s.Stats())
}

func TestFlush_Runaway(t *testing.T) {
	s := New(0, zaptest.NewLogger(t))
	var again func()
	runs := 0
	again = func() {
		runs++
		s.Mutate(again)
	}
	s.Mutate(again)
	s.Flush()
	assert.Equal(t, maxCycles, runs)
	assert.Equal(t, 1, s.Pending())
}

func TestFlush_RunawayReads(t *testing.T) {
	s := New(0, zaptest.NewLogger(t))
	var again func()
	runs, writes := 0, 0
	again = func() {
		runs++
		s.Measure(again)
	}
	s.Measure(again)
	s.Mutate(func() { writes++ })
	s.Flush()

	assert.Equal(t, maxCycles, runs)
	assert.Zero(t, writes, "writes wait for reads")
	assert.Equal(t, 2, s.Pending())

	// next frame continues where previous one stopped
	s.Flush()
	assert.Equal(t, 2*maxCycles, runs)
	assert.Equal(t, Stats{Reads: 2 * maxCycles, Flushes: 2}, s.Stats())
}

func TestFlush_ExactBudget(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	s := New(0, zap.New(core))
	runs := 0
	var next func()
	next = func() {
		runs++
		if runs < maxCycles {
			s.Mutate(next)
		}
	}
	s.Mutate(next)
	s.Flush()

	assert.Equal(t, maxCycles, runs)
	assert.Zero(t, s.Pending())
	assert.Zero(t, logs.Len(), "nothing was deferred")
}

func TestRun(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := New(time.Millisecond, zap.New(core))
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.Run(ctx)
	}()

	done := make(chan struct{})
	var mu sync.Mutex
	var order []string
	s.Measure(func() {
		mu.Lock()
		order = append(order, "read")
		mu.Unlock()
		s.Mutate(func() {
			mu.Lock()
			order = append(order, "write")
			mu.Unlock()
			close(done)
		})
	})

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("frame loop did not flush")
	}
	cancel()
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"read", "write"}, order)

	stopped := logs.FilterMessage("Frame loop stopped").All()
	require.Len(t, stopped, 1)
	assert.Equal(t, int64(0), stopped[0].ContextMap()["pending"])
}
