// Package watcher notices when a jj repository changes underneath jjview.
//
// Every jj command that modifies the repo records a new operation, which
// shows up as files being created and removed in .jj/repo/op_heads/heads.
// Watching that one directory catches commits made from another terminal,
// an editor integration, or a background snapshot.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/zjrosen/jjview/internal/log"
	"github.com/zjrosen/jjview/internal/pubsub"
)

// EventKind distinguishes watcher notifications.
type EventKind int

const (
	// RepoChanged means a new jj operation was recorded.
	RepoChanged EventKind = iota
	// WatcherError means fsnotify reported an error; watching continues.
	WatcherError
)

// Event is published on the watcher's broker.
type Event struct {
	Kind EventKind
	Err  error
}

// Watcher monitors a jj repository for new operations.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	dir       string
	debounce  time.Duration
	broker    *pubsub.Broker[Event]
	done      chan struct{}
}

// Config holds watcher configuration options.
type Config struct {
	// WorkspaceRoot is the directory `jj root` printed.
	WorkspaceRoot string
	DebounceDur   time.Duration
}

// DefaultConfig returns sensible defaults for the watcher.
func DefaultConfig(root string) Config {
	return Config{
		WorkspaceRoot: root,
		DebounceDur:   100 * time.Millisecond,
	}
}

// OpHeadsDir returns the directory holding the current operation heads.
// Secondary workspaces store the repo location in the .jj/repo file.
func OpHeadsDir(workspaceRoot string) (string, error) {
	jjDir := filepath.Join(workspaceRoot, ".jj")
	repo := filepath.Join(jjDir, "repo")

	info, err := os.Stat(repo)
	if err != nil {
		return "", fmt.Errorf("locating jj repo: %w", err)
	}
	if !info.IsDir() {
		data, err := os.ReadFile(repo) //nolint:gosec // G304: path inside the workspace
		if err != nil {
			return "", fmt.Errorf("reading workspace repo pointer: %w", err)
		}
		repo = strings.TrimSpace(string(data))
		if !filepath.IsAbs(repo) {
			repo = filepath.Join(jjDir, repo)
		}
	}
	return filepath.Join(repo, "op_heads", "heads"), nil
}

// New creates a new repository watcher.
func New(cfg Config) (*Watcher, error) {
	dir, err := OpHeadsDir(cfg.WorkspaceRoot)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	return &Watcher{
		fsWatcher: fsw,
		dir:       dir,
		debounce:  cfg.DebounceDur,
		broker:    pubsub.NewBroker[Event](),
		done:      make(chan struct{}),
	}, nil
}

// Broker returns the broker RepoChanged and WatcherError events are
// published on.
func (w *Watcher) Broker() *pubsub.Broker[Event] {
	return w.broker
}

// Subscribe is shorthand for Broker().Subscribe.
func (w *Watcher) Subscribe(ctx context.Context) <-chan pubsub.Event[Event] {
	return w.broker.Subscribe(ctx)
}

// Start begins watching the op heads directory.
func (w *Watcher) Start() error {
	if err := w.fsWatcher.Add(w.dir); err != nil {
		return fmt.Errorf("watching directory %s: %w", w.dir, err)
	}
	log.Info(log.CatWatcher, "Watching repository", "dir", w.dir, "debounce", w.debounce)

	go w.loop()
	return nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	err := w.fsWatcher.Close()
	w.broker.Close()
	return err
}

// loop processes file system events with debouncing.
func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		pending bool
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !isRelevantEvent(event) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			pending = true

		case <-func() <-chan time.Time {
			if timer != nil {
				return timer.C
			}
			return nil
		}():
			if pending {
				log.Debug(log.CatWatcher, "Repository changed")
				w.broker.Publish(pubsub.ChangedEvent, Event{Kind: RepoChanged})
				pending = false
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.ErrorErr(log.CatWatcher, "Watcher error", err)
			w.broker.Publish(pubsub.ErrorEvent, Event{Kind: WatcherError, Err: err})

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// isRelevantEvent reports whether the event marks a new operation. jj adds
// the new head file and then removes the old one; chmod is noise.
func isRelevantEvent(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
