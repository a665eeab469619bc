// Package watch reconverts articles whenever their source changes.
//
// A single file is polled on an interval; a directory tree is watched with
// fsnotify. Reconversions run synchronously on the watching goroutine and
// are neither debounced nor serialized against other processes.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gerunddev/ztoq/internal/logger"
	"github.com/gerunddev/ztoq/internal/runner"
	"github.com/gerunddev/ztoq/internal/state"
)

// Watcher reconverts changed inputs through a runner
type Watcher struct {
	runner   *runner.Runner
	log      *logger.Logger
	state    *state.State
	interval time.Duration

	// called once the watch is armed; tests use it to avoid racing the setup
	ready func()
}

// New creates a watcher. interval applies to single-file polling.
func New(r *runner.Runner, log *logger.Logger, interval time.Duration) *Watcher {
	return &Watcher{
		runner:   r,
		log:      log,
		state:    state.NewState(),
		interval: interval,
		ready:    func() {},
	}
}

// WatchFile polls in and reconverts it into out whenever its content
// changes. It blocks until ctx is cancelled.
func (w *Watcher) WatchFile(ctx context.Context, in, out string) error {
	if err := w.state.Update(in); err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.WatchStarted(in, w.interval)
	w.ready()

	missing := false
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			changed, err := w.state.HasChanged(in)
			if err != nil {
				if !missing {
					w.log.Skipped(in, "not a file")
					missing = true
				}
				w.state.Forget(in)
				continue
			}
			missing = false
			if !changed {
				continue
			}

			w.log.FileChanged(in)
			w.reconvert(in, out)
		}
	}
}

// WatchDir watches the tree under inDir and reconverts changed Markdown
// files into the mirrored path under outDir. It blocks until ctx is
// cancelled.
func (w *Watcher) WatchDir(ctx context.Context, inDir, outDir string) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	absOut, _ := filepath.Abs(outDir)
	if err := w.addTree(fw, inDir, absOut); err != nil {
		return err
	}

	w.log.WatchStarted(inDir, 0)
	w.ready()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(fw, ev, inDir, outDir, absOut)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

func (w *Watcher) handle(fw *fsnotify.Watcher, ev fsnotify.Event, inDir, outDir, absOut string) {
	rel, err := filepath.Rel(inDir, ev.Name)
	if err != nil {
		return
	}
	target := filepath.Join(outDir, rel)

	info, err := os.Stat(ev.Name)
	if err != nil {
		// removed or renamed away
		w.state.Forget(ev.Name)
		return
	}

	if info.IsDir() {
		if !ev.Has(fsnotify.Create) {
			return
		}
		if err := w.addTree(fw, ev.Name, absOut); err != nil {
			w.log.FileError(ev.Name, err)
			return
		}
		// files may have landed before the watch was added
		if _, err := w.runner.ConvertDir(ev.Name, target); err != nil {
			w.log.FileError(ev.Name, err)
		}
		return
	}

	if !info.Mode().IsRegular() || !w.runner.IsMarkdown(ev.Name) {
		return
	}

	changed, err := w.state.HasChanged(ev.Name)
	if err != nil || !changed {
		return
	}

	w.log.FileChanged(rel)
	w.reconvert(ev.Name, target)
}

// reconvert fingerprints in before reading it, so a write that lands
// mid-conversion still shows up as a change on the next event.
func (w *Watcher) reconvert(in, out string) {
	if err := w.state.Update(in); err != nil {
		w.log.FileError(in, err)
		return
	}
	if err := w.runner.ConvertFile(in, out); err != nil {
		w.state.Forget(in)
		if !errors.Is(err, runner.ErrNotFile) {
			w.log.ConversionError(in, out, err)
		}
	}
}

// addTree watches root and every directory below it, except the output tree
func (w *Watcher) addTree(fw *fsnotify.Watcher, root, absOut string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			w.log.FileError(path, err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if abs, _ := filepath.Abs(path); abs == absOut {
			return fs.SkipDir
		}
		if err := fw.Add(path); err != nil {
			if path == root {
				return err
			}
			w.log.FileError(path, err)
		}
		return nil
	})
}
