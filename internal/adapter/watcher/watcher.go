package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Temutjin2k/ride-analytics/internal/domain/types"
	"github.com/Temutjin2k/ride-analytics/pkg/logger"
	wrap "github.com/Temutjin2k/ride-analytics/pkg/logger/wrapper"
)

// defaultSettle is how long a file must stay quiet before it is handed over.
const defaultSettle = 500 * time.Millisecond

var extensions = []string{".csv", ".xlsx"}

// Watcher reports ride record files created or modified in a directory.
type Watcher struct {
	dir    string
	fs     *fsnotify.Watcher
	settle time.Duration
	l      logger.Logger
}

func New(dir string, l logger.Logger) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fs.Add(dir); err != nil {
		fs.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	return &Watcher{
		dir:    dir,
		fs:     fs,
		settle: defaultSettle,
		l:      l,
	}, nil
}

// Watch calls handle once per burst of writes to a .csv or .xlsx file until ctx is done.
// Files are handled one at a time. The watcher is closed on return.
func (w *Watcher) Watch(ctx context.Context, handle func(ctx context.Context, path string)) error {
	ctx = wrap.WithAction(ctx, types.ActionWatchImportDir)
	defer w.fs.Close()

	d := newDebouncer(w.settle, ctx.Done())
	defer d.stop()

	w.l.Info(ctx, "watching import directory", "dir", w.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if relevant(event) {
				d.touch(event.Name)
			}
		case sig := <-d.ready:
			if d.accept(sig) {
				handle(ctx, sig.path)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.l.Warn(ctx, "watcher error", "dir", w.dir, "error", err.Error())
		}
	}
}

type signal struct {
	path string
	gen  uint64
}

type pendingFile struct {
	timer *time.Timer
	gen   uint64
}

// debouncer delays a path until it has been quiet for settle. Only the
// latest timer of a path counts; a timer that fired before it was replaced
// delivers a stale signal that accept rejects. touch, accept and stop must
// be called from one goroutine.
type debouncer struct {
	settle  time.Duration
	ready   chan signal
	done    <-chan struct{}
	pending map[string]*pendingFile
	gen     uint64
}

func newDebouncer(settle time.Duration, done <-chan struct{}) *debouncer {
	return &debouncer{
		settle:  settle,
		ready:   make(chan signal),
		done:    done,
		pending: make(map[string]*pendingFile),
	}
}

func (d *debouncer) touch(path string) {
	if p, ok := d.pending[path]; ok {
		p.timer.Stop()
	}

	d.gen++
	sig := signal{path: path, gen: d.gen}
	d.pending[path] = &pendingFile{
		gen: sig.gen,
		timer: time.AfterFunc(d.settle, func() {
			select {
			case d.ready <- sig:
			case <-d.done:
			}
		}),
	}
}

// accept reports whether sig is the latest for its path and forgets the path if so.
func (d *debouncer) accept(sig signal) bool {
	p, ok := d.pending[sig.path]
	if !ok || p.gen != sig.gen {
		return false
	}
	delete(d.pending, sig.path)
	return true
}

func (d *debouncer) stop() {
	for _, p := range d.pending {
		p.timer.Stop()
	}
}

func relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return false
	}
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasPrefix(base, "~$") {
		return false
	}
	return slices.Contains(extensions, strings.ToLower(filepath.Ext(base)))
}
