package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const defaultDebounce = 200 * time.Millisecond

// watchTargets lists the files whose changes trigger regeneration: the
// config file and every source file, as absolute paths.
func watchTargets(args []string) ([]string, error) {
	f, err := loadConfig()
	if err != nil {
		return nil, err
	}

	paths := sourcePaths(f, args)
	if configPath != "" {
		paths = append(paths, configPath)
	}

	targets := make([]string, 0, len(paths))

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}

		targets = append(targets, abs)
	}

	if len(targets) == 0 {
		return nil, fmt.Errorf("nothing to watch: pass source files or a config")
	}

	return targets, nil
}

// watchLoop calls regenerate once per burst of changes to targets until ctx
// is done. Parent directories are watched instead of the files so that
// editors replacing a file by rename are still seen.
func watchLoop(ctx context.Context, targets []string, debounce time.Duration, regenerate func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	var dirs []string
	for _, t := range targets {
		if dir := filepath.Dir(t); !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	log := getLogger()
	log.Info("watching for changes", zap.Strings("files", targets))

	timer := time.NewTimer(debounce)
	timer.Stop()

	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}

			if !relevant(event, targets) {
				continue
			}

			log.Debug("change detected", zap.String("file", event.Name), zap.Stringer("op", event.Op))
			timer.Reset(debounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}

			log.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			if err := regenerate(); err != nil {
				log.Error("regeneration failed", zap.Error(err))
			}
		}
	}
}

func relevant(event fsnotify.Event, targets []string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return slices.Contains(targets, abs)
}
