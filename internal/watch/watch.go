// Package watch reports debounced changes to a set of files.
package watch

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
)

const DefaultDebounce = 200 * time.Millisecond

// Config holds watcher options.
type Config struct {
	// Paths are the files to watch. Their directories are watched so that
	// editors replacing files on save are noticed.
	Paths    []string
	Debounce time.Duration
	Logger   *slog.Logger
}

// Watcher signals when any watched file is written or created.
type Watcher struct {
	fs       *fsnotify.Watcher
	files    []string
	debounce time.Duration
	logger   *slog.Logger
	onChange chan struct{}
	done     chan struct{}
}

// New creates a watcher. Call Start to begin watching.
func New(cfg Config) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	files := make([]string, 0, len(cfg.Paths))
	for _, p := range cfg.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			_ = fsw.Close()
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}

		files = append(files, abs)
	}

	return &Watcher{
		fs:       fsw,
		files:    files,
		debounce: debounce,
		logger:   logger,
		onChange: make(chan struct{}, 1),
		done:     make(chan struct{}),
	}, nil
}

// Start watches the directories of the configured files and returns a
// channel receiving one signal per debounced burst of changes.
func (w *Watcher) Start() (<-chan struct{}, error) {
	dirs := make([]string, 0, len(w.files))
	for _, f := range w.files {
		dirs = append(dirs, filepath.Dir(f))
	}

	slices.Sort(dirs)

	for _, dir := range slices.Compact(dirs) {
		if err := w.fs.Add(dir); err != nil {
			return nil, fmt.Errorf("watching directory %s: %w", dir, err)
		}
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	return w.fs.Close()
}

func (w *Watcher) loop() {
	var timer *time.Timer

	// fired is nil until a relevant event arms the timer.
	var fired <-chan time.Time

	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}

			if !w.relevant(event) {
				continue
			}

			w.logger.Debug("file changed", "path", event.Name, "op", event.Op.String())

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}

			fired = timer.C

		case <-fired:
			fired = nil

			select {
			case w.onChange <- struct{}{}:
			default:
			}

		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}

			w.logger.Warn("watch error", "error", err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}

			return
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return slices.Contains(w.files, name)
}
