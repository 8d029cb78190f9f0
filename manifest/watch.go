package manifest

import (
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// Watch invokes onChange whenever something under dir changes. It is a
// development convenience for reloading a plugin pool after editing
// manifests; the returned stop function releases the watcher.
func Watch(dir string, onChange func(fsnotify.Event)) (func() error, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback is nil")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", dir, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				onChange(event)
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return watcher.Close, nil
}
