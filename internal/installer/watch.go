package installer

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hwskills/skillkit/internal/logging"
)

// DefaultDebounce is the quiet period after the last corpus change
// before a reinstall is triggered. Editors tend to emit bursts of
// write/rename events for a single save.
const DefaultDebounce = 300 * time.Millisecond

// Watch monitors a corpus directory and invokes reinstall after each
// burst of changes to Markdown files. It blocks until ctx is cancelled
// or the watcher fails.
func Watch(ctx context.Context, dir string, debounce time.Duration, reinstall func() error) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %q: %w", dir, err)
	}

	logging.Info("watching corpus for changes",
		logging.Path(dir),
	)

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			logging.Debug("corpus change detected",
				logging.Path(event.Name),
				logging.Operation(event.Op.String()),
			)
			timer.Reset(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logging.Warn("watcher error", logging.Err(err))

		case <-timer.C:
			if err := reinstall(); err != nil {
				logging.Error("reinstall after change failed", logging.Err(err))
			}
		}
	}
}

// relevant filters watch events down to Markdown document changes.
func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(filepath.Base(event.Name), ".md") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
