package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ByLCY/inkline/source"
)

// debounce collapses the burst of events editors emit for one save.
const debounce = 100 * time.Millisecond

// watch re-renders whenever the layout file or a file source changes.
// The parent directories are watched so that atomic-rename saves are seen.
func watch(ctx context.Context, opts options, l *zap.Logger) error {
	targets := watchTargets(opts)
	if len(targets) == 0 {
		return fmt.Errorf("没有可监听的文件")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("创建文件监听失败: %w", err)
	}
	defer watcher.Close()

	dirs := map[string]bool{}
	for path := range targets {
		dir := filepath.Dir(path)
		if dirs[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("监听目录 %s 失败: %w", dir, err)
		}
		dirs[dir] = true
	}
	l.Info("watching", zap.Int("files", len(targets)))

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !targets[filepath.Clean(event.Name)] {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer = time.After(debounce)
		case <-timer:
			timer = nil
			if err := renderOnce(ctx, opts, l); err != nil {
				l.Error("render", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			l.Error("watcher", zap.Error(err))
		}
	}
}

// watchTargets lists the cleaned paths whose changes trigger a re-render.
func watchTargets(opts options) map[string]bool {
	targets := map[string]bool{}
	if opts.layoutPath != "" {
		targets[filepath.Clean(opts.layoutPath)] = true
	}
	lay, err := buildLayout(opts, os.Getenv)
	if err != nil {
		return targets
	}
	for _, r := range lay.Regions {
		ref, err := source.ParseRef(r.Source)
		if err == nil && ref.Kind == source.KindFile {
			targets[filepath.Clean(ref.Value)] = true
		}
	}
	return targets
}
