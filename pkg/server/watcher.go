package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/pagesmith/pagesmith-cli/internal/logging"
)

// Watcher calls onChange when a file in a directory is written, created,
// renamed or removed. Temp files (dot-prefixed) and logs are ignored.
type Watcher struct {
	watcher  *fsnotify.Watcher
	dir      string
	only     string
	onChange func()
	done     chan struct{}
	log      logging.Logger
}

// NewWatcher watches dir. A non-empty only restricts events to that base name
// and names derived from it ("pagesmith.db-journal").
func NewWatcher(dir, only string, onChange func(), log logging.Logger) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	if log == nil {
		log = logging.Nop()
	}
	return &Watcher{
		watcher:  fsWatcher,
		dir:      dir,
		only:     only,
		onChange: onChange,
		done:     make(chan struct{}),
		log:      log,
	}, nil
}

func relevant(event fsnotify.Event, only string) bool {
	base := filepath.Base(event.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, ".log") {
		return false
	}
	if only != "" && base != only && !strings.HasPrefix(base, only+"-") {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go func() {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if relevant(event, w.only) {
					w.log.Debug(context.Background(), "store changed", "file", event.Name, "op", event.Op.String())
					w.onChange()
				}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				w.log.Warn(context.Background(), "watch error", "err", err)

			case <-w.done:
				return
			}
		}
	}()
}

func (w *Watcher) Stop() error {
	close(w.done)
	return w.watcher.Close()
}
