// Package watcher monitors the item data file and notifies the TUI to
// reload it.
//
// The parent directory is watched rather than the file itself: most editors
// save by writing a temporary file and renaming it over the original, which
// drops a watch placed on the old inode. Events for other names in the
// directory are filtered out.
package watcher

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is sent when the watched file changed.
type Event struct {
	Path string
}

// Watch monitors path and sends an Event on the returned channel after each
// burst of changes. Rapid bursts are coalesced via the debounce window.
//
// Call the returned stop function to tear down the watcher.
func Watch(path string, debounce time.Duration) (<-chan Event, func(), error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	ch := make(chan Event, 1)
	done := make(chan struct{})

	// Jitter spreads reloads when several instances watch the same file.
	jitterRange := int64(debounce / 2)

	go func() {
		defer close(ch)
		var timer *time.Timer

		for {
			select {
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if !relevant(ev, abs) {
					continue
				}
				d := debounce
				if jitterRange > 0 {
					d += time.Duration(rand.Int64N(jitterRange))
				}
				if timer == nil {
					timer = time.NewTimer(d)
				} else {
					timer.Reset(d)
				}
			case <-timerChan(timer):
				timer = nil
				select {
				case ch <- Event{Path: abs}:
				default:
				}
			case _, ok := <-w.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		_ = w.Close()
	}

	return ch, stop, nil
}

// timerChan returns the timer's channel, or a nil channel if timer is nil.
func timerChan(t *time.Timer) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}

// relevant reports whether ev touches the watched file.
func relevant(ev fsnotify.Event, path string) bool {
	if ev.Name != path || shouldIgnore(ev.Name) {
		return false
	}
	// Chmod alone does not change content.
	return ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0
}

// shouldIgnore returns true for editor swap and backup files.
func shouldIgnore(path string) bool {
	base := filepath.Base(path)
	return strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#")
}
