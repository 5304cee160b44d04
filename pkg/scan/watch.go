package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/kzmshx/php-graph/pkg/errors"
)

// DefaultDebounce is how long Watch waits after the last change before
// calling the handler.
const DefaultDebounce = 300 * time.Millisecond

// DefaultMaxWait bounds how long a batch can be held back by a steady
// stream of changes.
const DefaultMaxWait = 3 * time.Second

// WatchOptions configures [Watch].
type WatchOptions struct {
	DiscoverOptions

	// Debounce batches bursts of events. Zero means DefaultDebounce.
	Debounce time.Duration

	// MaxWait is the longest time between the first change of a batch and
	// the handler call. Zero means DefaultMaxWait.
	MaxWait time.Duration

	// Logger receives watcher errors. Nil means log.Default().
	Logger *log.Logger
}

// Watch observes every directory under roots and calls onChange with the
// changed source files after each quiet period, or once a batch has waited
// MaxWait. New directories are watched as they appear; excluded directories
// are never watched, nor are roots that name a single file. Errors from
// onChange are logged and watching continues.
//
// Watch blocks until ctx is done and returns ctx.Err().
func Watch(ctx context.Context, roots []string, opts WatchOptions, onChange func(changed []string) error) error {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = DefaultMaxWait
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	m := opts.matcher()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "start watcher")
	}
	defer w.Close()

	// owner maps each watched directory to the root it was found under.
	owner := make(map[string]string)
	addTree := func(root, dir string) error {
		return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || !d.IsDir() {
				return err
			}
			if path != root && m.excluded(root, path, true) {
				return filepath.SkipDir
			}
			if err := w.Add(path); err != nil {
				return err
			}
			owner[path] = root
			return nil
		})
	}
	for _, root := range roots {
		if err := addTree(root, root); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", root)
		}
	}

	var (
		pending []string
		seen    = make(map[string]bool)
		first   time.Time
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	flush := func() {
		timer, timerC = nil, nil
		if len(pending) == 0 {
			return
		}
		changed := pending
		pending, seen = nil, make(map[string]bool)
		if err := onChange(changed); err != nil {
			opts.Logger.Error("rebuild failed", "err", err)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return ctx.Err()

		case ev, ok := <-w.Events:
			if !ok {
				return ctx.Err()
			}
			root := owner[filepath.Dir(ev.Name)]
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if root != "" && !m.excluded(root, ev.Name, true) {
						if err := addTree(root, ev.Name); err != nil {
							opts.Logger.Warn("watch directory", "path", ev.Name, "err", err)
						}
					}
					continue
				}
			}
			if !m.source(filepath.Base(ev.Name)) || (root != "" && m.excluded(root, ev.Name, false)) {
				continue
			}
			if len(pending) == 0 {
				first = time.Now()
			}
			if !seen[ev.Name] {
				seen[ev.Name] = true
				pending = append(pending, ev.Name)
			}
			wait := min(opts.Debounce, max(opts.MaxWait-time.Since(first), 0))
			if timer == nil {
				timer = time.NewTimer(wait)
				timerC = timer.C
			} else {
				timer.Reset(wait)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return ctx.Err()
			}
			opts.Logger.Warn("watch error", "err", err)

		case <-timerC:
			flush()
		}
	}
}
