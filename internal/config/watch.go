package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk. Successful loads
// arrive on Changes, failures on Errors; the game loop drains both between
// frames so no config is applied mid-update.
type Watcher struct {
	Changes chan Config
	Errors  chan error

	path    string
	sum     uint64 // xxhash of the last contents read
	watcher *fsnotify.Watcher
	log     *zap.Logger
	closeCh chan struct{}
	done    chan struct{}
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched rather than
// the file so editors that save by rename are still seen.
func Watch(path string, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}

	w := &Watcher{
		Changes: make(chan Config, 1),
		Errors:  make(chan error, 1),
		path:    abs,
		watcher: fw,
		log:     log,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	if data, err := os.ReadFile(abs); err == nil {
		w.sum = xxhash.Sum64(data)
	}
	go w.run()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
		<-w.done
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.done)

	timer := time.NewTimer(reloadDebounce)
	timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			// Editors often write in several steps; load once they settle.
			timer.Reset(reloadDebounce)
		case <-timer.C:
			w.reload()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.sendErr(err)
		case <-w.closeCh:
			timer.Stop()
			return
		}
	}
}

func (w *Watcher) reload() {
	data, err := os.ReadFile(w.path)
	if err != nil {
		w.sendErr(fmt.Errorf("config: read %s: %w", w.path, err))
		return
	}
	// Touches and saves without edits don't re-apply anything.
	sum := xxhash.Sum64(data)
	if sum == w.sum {
		w.log.Debug("config unchanged", zap.String("path", w.path))
		return
	}
	w.sum = sum

	cfg, err := Parse(data)
	if err != nil {
		w.sendErr(fmt.Errorf("config: %s: %w", w.path, err))
		return
	}
	w.log.Debug("config changed", zap.String("path", w.path))

	// Keep only the newest config if the loop hasn't caught up.
	select {
	case <-w.Changes:
	default:
	}
	select {
	case w.Changes <- cfg:
	case <-w.closeCh:
	}
}

func (w *Watcher) sendErr(err error) {
	select {
	case w.Errors <- err:
	default:
		w.log.Warn("config watcher error dropped", zap.Error(err))
	}
}
