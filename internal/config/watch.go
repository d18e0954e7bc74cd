package config

import (
	"os"
	"time"
)

// Watcher polls a config file for modification. It is driven from the frame
// loop, so it never blocks and never spawns goroutines.
type Watcher struct {
	path     string
	interval time.Duration
	modTime  time.Time
	lastPoll time.Time
	now      func() time.Time
}

func NewWatcher(path string, interval time.Duration) *Watcher {
	w := &Watcher{path: path, interval: interval, now: time.Now}
	if info, err := os.Stat(path); err == nil {
		w.modTime = info.ModTime()
	}
	return w
}

func (w *Watcher) Path() string { return w.path }

// Poll returns a freshly loaded config when the file changed since the last
// successful load. Calls within the interval are no-ops.
func (w *Watcher) Poll() (Config, bool, error) {
	now := w.now()
	if !w.lastPoll.IsZero() && now.Sub(w.lastPoll) < w.interval {
		return Config{}, false, nil
	}
	w.lastPoll = now

	info, err := os.Stat(w.path)
	if err != nil {
		return Config{}, false, err
	}
	if !info.ModTime().After(w.modTime) {
		return Config{}, false, nil
	}

	cfg, err := Load(w.path)
	if err != nil {
		// Half-written files are retried on the next tick.
		return Config{}, false, err
	}
	w.modTime = info.ModTime()
	return cfg, true, nil
}
