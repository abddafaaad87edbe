package tremor

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Window during which repeated events for the config file collapse
// into a single reload.
const configDebounce = 100 * time.Millisecond

// ConfigWatcher reloads a configuration file whenever it changes on
// disk. Valid configurations are published on Configs, and load or
// validation failures on Errors. Both channels are closed by Close().
//
// Engines never re-arm, so a host reacting to Configs is expected to
// detach the current engine and build a new one.
type ConfigWatcher struct {
	Configs chan Config
	Errors  chan error

	filename string
	watcher  *fsnotify.Watcher
	closeCh  chan struct{}
	done     chan struct{}
	once     sync.Once
}

// Starts watching the given file. Its directory is watched rather
// than the file itself so editors that replace files on save keep
// working.
func WatchConfig(filename string) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(filename)
	if err != nil {
		return nil, err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &ConfigWatcher{
		Configs:  make(chan Config, 1),
		Errors:   make(chan error, 1),
		filename: abs,
		watcher:  w,
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Stops watching and closes the channels.
func (self *ConfigWatcher) Close() error {
	var err error
	self.once.Do(func() {
		close(self.closeCh)
		err = self.watcher.Close()
		<-self.done
	})
	return err
}

func (self *ConfigWatcher) run() {
	defer close(self.done)
	defer close(self.Errors)
	defer close(self.Configs)

	var reload <-chan time.Time
	for {
		select {
		case event, ok := <-self.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != self.filename {
				continue
			}
			reload = time.After(configDebounce)
		case <-reload:
			reload = nil
			cfg, err := LoadConfig(self.filename)
			if err != nil {
				self.publishError(err)
				continue
			}
			select {
			case self.Configs <- cfg:
			case <-self.closeCh:
				return
			}
		case err, ok := <-self.watcher.Errors:
			if !ok {
				return
			}
			self.publishError(err)
		case <-self.closeCh:
			return
		}
	}
}

// Errors are dropped when nobody is reading them.
func (self *ConfigWatcher) publishError(err error) {
	select {
	case self.Errors <- err:
	default:
	}
}
