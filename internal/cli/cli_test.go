package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/greenthreads"
	"github.com/ygrebnov/greenthreads/metrics"
)

func TestRun(t *testing.T) {
	var out bytes.Buffer
	rep, err := Run(context.Background(), Settings{
		Tasks:    200,
		Terms:    50,
		Workers:  2,
		Wait:     greenthreads.WaitPark,
		LogLevel: "info",
		Metrics:  true,
	}, &out)
	require.NoError(t, err)

	assert.Equal(t, 2, rep.Workers)
	assert.Equal(t, 200, rep.Spawned)
	assert.Positive(t, rep.Parallel)
	assert.Positive(t, rep.Sequential)

	assert.Equal(t, float64(200), rep.Samples[metrics.TasksSpawned])
	assert.Equal(t, float64(200), rep.Samples[metrics.TasksComplete])
	assert.Equal(t, float64(0), rep.Samples[metrics.TasksInFlight])
	assert.Equal(t, float64(200), rep.Samples[metrics.TaskDuration])

	log := out.String()
	assert.Contains(t, log, "[Green Threads] took")
	assert.Contains(t, log, "[Normal] took")
	assert.Contains(t, log, "spawned=200")
	assert.Contains(t, log, "metric="+metrics.TasksSpawned)
}

func TestRun_InvalidSettings(t *testing.T) {
	tests := []struct {
		name string
		s    Settings
	}{
		{name: "negative tasks", s: Settings{Tasks: -1, Terms: 1}},
		{name: "no terms", s: Settings{Tasks: 1, Terms: 0}},
		{name: "bad level", s: Settings{Tasks: 1, Terms: 1, LogLevel: "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.s, &bytes.Buffer{})
			assert.True(t, errors.Is(err, ErrInvalidSettings), "got %v", err)
		})
	}
}

func TestRootCommand_Flags(t *testing.T) {
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetArgs([]string{"--tasks", "20", "--terms", "10", "--workers", "3", "--wait", "spin"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "workers=3")
	assert.Contains(t, out.String(), "spawned=20")
}

func TestRootCommand_Env(t *testing.T) {
	t.Setenv("GREENBENCH_TASKS", "7")
	t.Setenv("GREENBENCH_TERMS", "5")
	t.Setenv("GREENBENCH_WORKERS", "2")

	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "spawned=7")
	assert.Contains(t, out.String(), "workers=2")
}

func TestRootCommand_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tasks: 9\nterms: 4\nworkers: 1\nlog:\n  level: info\n"), 0o600))

	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetArgs([]string{"--config", path, "--tasks", "11"})

	require.NoError(t, cmd.Execute())
	// flags win over the config file
	assert.Contains(t, out.String(), "spawned=11")
	assert.Contains(t, out.String(), "workers=1")
}

func TestRootCommand_UnknownWaitStrategy(t *testing.T) {
	cmd := NewRootCommand(&bytes.Buffer{})
	cmd.SetArgs([]string{"--tasks", "1", "--wait", "sleep"})

	err := cmd.Execute()
	assert.True(t, errors.Is(err, greenthreads.ErrUnknownWaitStrategy), "got %v", err)
}
