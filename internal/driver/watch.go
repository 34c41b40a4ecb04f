package driver

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long Watch waits for more writes to a file before
// reformatting it.
const DefaultDebounce = 150 * time.Millisecond

// WatchOptions configures Watch.
type WatchOptions struct {
	Format   FormatOptions
	Debounce time.Duration
	// OnResult is called from the watch goroutine after each reformat.
	OnResult func(FormatResult)
	// Ready, if set, is closed once all directories are being watched.
	Ready chan<- struct{}
}

// Watch reformats matching files under dirs whenever they are created or
// written, until ctx is cancelled. Check and Stdout options are ignored:
// watch always writes.
func Watch(ctx context.Context, dirs []string, opts WatchOptions) error {
	logger := LoggerFromContext(ctx)
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	filter := opts.Format.Filter
	for _, dir := range dirs {
		if err := addRecursive(watcher, dir, filter); err != nil {
			return err
		}
	}
	if opts.Ready != nil {
		close(opts.Ready)
	}
	logger.Info("watching", "dirs", len(dirs))

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fopts := opts.Format
	fopts.Check, fopts.Stdout = false, false

	pending := make(map[string]struct{})
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		paths := make([]string, 0, len(pending))
		for p := range pending {
			paths = append(paths, p)
		}
		clear(pending)
		sort.Strings(paths)
		for _, p := range paths {
			res := formatSingleFile(ctx, p, fopts)
			switch {
			case res.Err != nil:
				logger.Error("format failed", "path", p, "err", res.Err)
			case res.Changed:
				logger.Info("formatted", "path", p)
			default:
				logger.Debug("unchanged", "path", p)
			}
			if opts.OnResult != nil {
				opts.OnResult(res)
			}
		}
		timer, timerC = nil, nil
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
				if ev.Has(fsnotify.Create) {
					if err := addRecursive(watcher, ev.Name, filter); err != nil {
						logger.Warn("watch failed", "dir", ev.Name, "err", err)
					}
				}
				continue
			}
			if !filter.matches(ev.Name) {
				continue
			}
			pending[filepath.Clean(ev.Name)] = struct{}{}
			if timer == nil {
				timer = time.NewTimer(debounce)
				timerC = timer.C
			} else {
				timer.Reset(debounce)
			}
		case <-timerC:
			flush()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string, filter FileFilter) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return errors.New("watch: " + root + " is not a directory")
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && filter.excluded(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(path)
	})
}
