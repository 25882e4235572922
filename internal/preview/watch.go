package preview

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/diewo77/invoice-builder/internal/ierr"
	"github.com/diewo77/invoice-builder/internal/logger"
)

// Watch calls fn once at start and again, debounced by delay, whenever the
// file at path is written or replaced. It blocks until ctx is done.
//
// The parent directory is watched rather than the file itself so editors
// that save by rename keep triggering events.
func Watch(ctx context.Context, path string, delay time.Duration, fn func(), log *logger.Logger) error {
	log = logger.Or(log)
	abs, err := filepath.Abs(path)
	if err != nil {
		return ierr.WithError(err).WithMessage("resolve watch path").Mark(ierr.ErrSystem)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return ierr.WithError(err).WithMessage("create watcher").Mark(ierr.ErrSystem)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return ierr.WithError(err).
			WithHintf("cannot watch %s", filepath.Dir(abs)).
			Mark(ierr.ErrSystem)
	}

	deb := NewDebouncer(delay, fn)
	defer deb.Stop()
	fn()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				log.Debugw("document changed", "path", abs, "op", ev.Op.String())
				deb.Trigger()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watch error", "path", abs, "error", err)
		}
	}
}
