package main

import (
	"log/slog"
	"os"
	"slices"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
)

const restartEnv = "VIBRANTD_RESTARTED=1"

// watchExecutable re-execs the current process when the executable is
// rebuilt.
func watchExecutable(logger *slog.Logger) {
	exe, err := os.Executable()
	if err != nil {
		logger.Warn("watcher: failed to watch own binary: get own path", "error", err)
		return
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		logger.Warn("watcher: failed to watch own binary: create watcher", "error", err)
		return
	}
	defer watcher.Close()

	if err := watcher.Add(exe); err != nil {
		logger.Warn("watcher: failed to watch own binary: update watcher", "error", err)
		return
	}
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Chmod) {
				// go build chmods it at the end of the build
				logger.Info("watcher: got chmod, restarting in 500ms")
				time.Sleep(time.Millisecond * 500)
				env := os.Environ()
				if !slices.Contains(env, restartEnv) {
					env = append(env, restartEnv)
				}
				if err := syscall.Exec(exe, os.Args, env); err != nil {
					logger.Error("watcher: restart failed", "error", err)
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("watcher: warning", "error", err)
		}
	}
}
