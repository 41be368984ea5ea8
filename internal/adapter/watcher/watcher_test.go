package watcher

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Temutjin2k/ride-analytics/pkg/logger"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"csv create", fsnotify.Event{Name: "/in/rides.csv", Op: fsnotify.Create}, true},
		{"xlsx write", fsnotify.Event{Name: "/in/rides.XLSX", Op: fsnotify.Write}, true},
		{"remove", fsnotify.Event{Name: "/in/rides.csv", Op: fsnotify.Remove}, false},
		{"chmod", fsnotify.Event{Name: "/in/rides.csv", Op: fsnotify.Chmod}, false},
		{"text file", fsnotify.Event{Name: "/in/notes.txt", Op: fsnotify.Create}, false},
		{"hidden", fsnotify.Event{Name: "/in/.rides.csv", Op: fsnotify.Create}, false},
		{"excel lock file", fsnotify.Event{Name: "/in/~$rides.xlsx", Op: fsnotify.Create}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relevant(tt.event))
		})
	}
}

func TestWatcher_ReportsDataFiles(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir, logger.New(io.Discard, "test", logger.LevelError))
	require.NoError(t, err)
	w.settle = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())

	var (
		mu   sync.Mutex
		seen []string
	)
	done := make(chan error, 1)
	go func() {
		done <- w.Watch(ctx, func(_ context.Context, path string) {
			mu.Lock()
			seen = append(seen, filepath.Base(path))
			mu.Unlock()
		})
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "rides.csv"), []byte("Date\n"), 0o600))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(seen) == 1
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"rides.csv"}, seen)
}

func TestNew_MissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent"), logger.New(io.Discard, "test", logger.LevelError))
	assert.Error(t, err)
}

func TestDebouncer_ReplacedTimerFiresOnce(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	d := newDebouncer(10*time.Millisecond, done)
	defer d.stop()

	d.touch("/in/rides.csv")
	// the first timer fires and blocks until its signal is read
	time.Sleep(50 * time.Millisecond)
	d.touch("/in/rides.csv")

	var accepted []string
	timeout := time.After(300 * time.Millisecond)
	for collecting := true; collecting; {
		select {
		case sig := <-d.ready:
			if d.accept(sig) {
				accepted = append(accepted, sig.path)
			}
		case <-timeout:
			collecting = false
		}
	}

	assert.Equal(t, []string{"/in/rides.csv"}, accepted)
	assert.Empty(t, d.pending)
}

func TestDebouncer_PathsAreIndependent(t *testing.T) {
	done := make(chan struct{})
	defer close(done)

	d := newDebouncer(10*time.Millisecond, done)
	d.touch("/in/a.csv")
	d.touch("/in/b.csv")

	got := map[string]bool{}
	for range 2 {
		select {
		case sig := <-d.ready:
			got[sig.path] = d.accept(sig)
		case <-time.After(time.Second):
			t.Fatal("debounced path not delivered")
		}
	}
	assert.Equal(t, map[string]bool{"/in/a.csv": true, "/in/b.csv": true}, got)
}
