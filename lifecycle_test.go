package greenthreads

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLifecycle_OrderAndOnce(t *testing.T) {
	var (
		mu    sync.Mutex
		steps []string
	)
	record := func(s string) func() {
		return func() {
			mu.Lock()
			steps = append(steps, s)
			mu.Unlock()
		}
	}

	lc := newLifecycleCoordinator(record("stopIntake"), record("drain"), record("closePool"), record("onClosed"))

	var wg sync.WaitGroup
	wg.Add(5)
	for i := 0; i < 5; i++ {
		go func() {
			defer wg.Done()
			lc.Close()
		}()
	}
	wg.Wait()

	assert.Equal(t, []string{"stopIntake", "drain", "closePool", "onClosed"}, steps)
}

func TestLifecycle_NilStepsSkipped(t *testing.T) {
	called := false
	lc := newLifecycleCoordinator(nil, func() { called = true }, nil, nil)
	assert.NotPanics(t, lc.Close)
	assert.True(t, called)
}
