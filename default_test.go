package greenthreads

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetDefaultForTest(t *testing.T) {
	t.Helper()
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if s := defaultScheduler.Swap(nil); s != nil {
		s.Close()
	}
}

func TestInit(t *testing.T) {
	resetDefaultForTest(t)
	t.Cleanup(func() { resetDefaultForTest(t) })

	require.NoError(t, Init(WithFixedPool(3)))
	assert.Equal(t, 3, WorkerCount())

	err := Init(WithFixedPool(5))
	assert.True(t, errors.Is(err, ErrAlreadyInitialized))
	assert.Equal(t, 3, WorkerCount())
}

func TestInit_InvalidOptionLeavesDefaultUnset(t *testing.T) {
	resetDefaultForTest(t)
	t.Cleanup(func() { resetDefaultForTest(t) })

	err := Init(WithFixedPool(0))
	assert.True(t, errors.Is(err, ErrInvalidConfig))
	assert.Nil(t, defaultScheduler.Load())

	require.NoError(t, Init(WithFixedPool(1)))
}

func TestDefault_SingleInstance(t *testing.T) {
	resetDefaultForTest(t)
	t.Cleanup(func() { resetDefaultForTest(t) })

	var (
		wg  sync.WaitGroup
		got [8]*Scheduler
	)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = Default()
		}()
	}
	wg.Wait()

	for _, s := range got {
		require.Same(t, got[0], s)
	}
	assert.True(t, errors.Is(Init(), ErrAlreadyInitialized))
}

func TestDefault_PackageHelpers(t *testing.T) {
	resetDefaultForTest(t)
	t.Cleanup(func() { resetDefaultForTest(t) })

	var executed atomic.Int64
	for i := 0; i < 100; i++ {
		require.NoError(t, Spawn(func() { executed.Add(1) }))
	}
	AwaitAll()
	assert.Equal(t, int64(100), executed.Load())
}

func TestDefault_EnvWorkers(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		want    int
		wantErr bool
	}{
		{name: "valid", env: "2", want: 2},
		{name: "zero", env: "0", wantErr: true},
		{name: "garbage", env: "many", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetDefaultForTest(t)
			t.Cleanup(func() { resetDefaultForTest(t) })
			t.Setenv(EnvWorkers, tt.env)

			err := Init()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidConfig), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, WorkerCount())
		})
	}
}

func TestDefault_OptionsOverrideEnv(t *testing.T) {
	resetDefaultForTest(t)
	t.Cleanup(func() { resetDefaultForTest(t) })
	t.Setenv(EnvWorkers, "2")

	require.NoError(t, Init(WithFixedPool(4)))
	assert.Equal(t, 4, WorkerCount())
}
