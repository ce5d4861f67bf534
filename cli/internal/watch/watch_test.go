package watch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Senither/Database-Manager-sub000/cli/internal/watch"
)

func TestWatcher_RerunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "users.yaml")
	require.NoError(t, os.WriteFile(file, []byte("table: users\n"), 0o644))

	var calls atomic.Int32
	w, err := watch.NewWatcher(file, func() error {
		calls.Add(1)
		return nil
	})
	require.NoError(t, err)
	w.SetDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.Eventually(t, func() bool { return calls.Load() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(file, []byte("table: posts\n"), 0o644))
	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)

	other := filepath.Join(dir, "other.yaml")
	before := calls.Load()
	require.NoError(t, os.WriteFile(other, []byte("table: x\n"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, before, calls.Load())

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_InitialError(t *testing.T) {
	file := filepath.Join(t.TempDir(), "users.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	boom := errors.New("boom")
	w, err := watch.NewWatcher(file, func() error { return boom })
	require.NoError(t, err)

	err = w.Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := watch.NewWatcher(filepath.Join(t.TempDir(), "missing", "users.yaml"), func() error { return nil })
	assert.Error(t, err)
}
