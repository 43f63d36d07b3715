package scheduler

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerFiresEnabledEntries(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "schedules.json"))
	require.NoError(t, store.Add(&Entry{
		Name:     "fast",
		Ref:      "acme/whisper:v1",
		Schedule: "* * * * * *", // every second
		Input:    map[string]any{"prompt": "tick"},
		Enabled:  true,
	}))

	var fired atomic.Int32
	var gotRef atomic.Value
	sched := New(store, func(name, ref string, input map[string]any) {
		fired.Add(1)
		gotRef.Store(ref)
	})

	require.NoError(t, sched.Start())
	defer sched.Stop()

	deadline := time.Now().Add(3 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}

	require.Positive(t, fired.Load(), "schedule never fired")
	assert.Equal(t, "acme/whisper:v1", gotRef.Load())
}

func TestSchedulerSkipsDisabledEntries(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "schedules.json"))
	require.NoError(t, store.Add(&Entry{
		Name:     "off",
		Ref:      "acme/whisper:v1",
		Schedule: "* * * * * *",
		Enabled:  false,
	}))

	var fired atomic.Int32
	sched := New(store, func(name, ref string, input map[string]any) {
		fired.Add(1)
	})

	require.NoError(t, sched.Start())
	defer sched.Stop()

	time.Sleep(1500 * time.Millisecond)
	assert.Zero(t, fired.Load())
}

func TestSchedulerIgnoresInvalidCron(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "schedules.json"))
	require.NoError(t, store.Add(&Entry{
		Name:     "broken",
		Ref:      "acme/whisper:v1",
		Schedule: "not a cron line",
		Enabled:  true,
	}))

	sched := New(store, func(name, ref string, input map[string]any) {})
	assert.NoError(t, sched.Start())
	sched.Stop()
}

func TestSchedulerReload(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "schedules.json"))

	var fired atomic.Int32
	sched := New(store, func(name, ref string, input map[string]any) {
		fired.Add(1)
	})
	require.NoError(t, sched.Start())
	defer sched.Stop()

	require.NoError(t, store.Add(&Entry{
		Name:     "late",
		Ref:      "acme/whisper:v1",
		Schedule: "* * * * * *",
		Enabled:  true,
	}))
	require.NoError(t, sched.Reload())

	deadline := time.Now().Add(3 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}
	assert.Positive(t, fired.Load(), "reloaded schedule never fired")
}
