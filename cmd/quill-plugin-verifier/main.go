package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/quillc/quill/pkg/config"
	"github.com/quillc/quill/pkg/plugins"
)

// debounce window for filesystem events in watch mode
const watchSettle = 250 * time.Millisecond

// Verifier tool checks every installed Quill plugin directory and
// reports which ones the compiler would refuse to load
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	dirs := flag.String("dirs", strings.Join(cfg.Plugins.Dirs, string(os.PathListSeparator)), "Plugin directories to verify (path list)")
	maxConcurrent := flag.Int("max-concurrent", cfg.Verifier.MaxConcurrent, "Maximum concurrent verifications")
	watch := flag.Bool("watch", cfg.Verifier.Watch, "Keep running and re-verify on filesystem changes")
	logLevel := flag.String("log-level", cfg.Observability.LogLevel, "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := setupLogger(*logLevel)
	logger.Info("Starting Quill Plugin Verifier")

	roots := filepath.SplitList(*dirs)
	verifier := plugins.NewVerifier(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("Received shutdown signal, stopping verifier...")
		cancel()
	}()

	failed := verifyAll(ctx, verifier, roots, *maxConcurrent, logger)

	if !*watch {
		if failed > 0 {
			logger.Errorf("%d plugin(s) failed verification", failed)
			os.Exit(1)
		}
		logger.Info("All plugins verified")
		return
	}

	if err := watchAndVerify(ctx, verifier, roots, *maxConcurrent, logger); err != nil {
		logger.Fatalf("Watch mode failed: %v", err)
	}
}

func setupLogger(logLevel string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}

// verifyAll verifies every plugin directory under the given roots with
// a bounded worker pool and returns the number of failures
func verifyAll(ctx context.Context, verifier *plugins.Verifier, roots []string, maxConcurrent int, logger *logrus.Logger) int {
	pluginDirs := collectPluginDirs(roots, logger)
	if len(pluginDirs) == 0 {
		logger.Warn("No plugin directories found")
		return 0
	}

	var (
		mu     sync.Mutex
		failed int
	)

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrent)

	for _, dir := range pluginDirs {
		dir := dir
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			result, err := verifier.VerifyDir(dir)
			if err != nil {
				return err
			}

			reportResult(result, logger)
			if !result.Valid {
				mu.Lock()
				failed++
				mu.Unlock()
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil && ctx.Err() == nil {
		logger.Errorf("Verification run failed: %v", err)
	}

	return failed
}

// collectPluginDirs lists the immediate subdirectories of every root
func collectPluginDirs(roots []string, logger *logrus.Logger) []string {
	var dirs []string

	for _, root := range roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			logger.Debugf("Skipping plugin root %s: %v", root, err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				dirs = append(dirs, filepath.Join(root, entry.Name()))
			}
		}
	}

	return dirs
}

func reportResult(result *plugins.VerificationResult, logger *logrus.Logger) {
	entry := logger.WithFields(logrus.Fields{
		"plugin":   result.PluginID,
		"dir":      result.PluginDir,
		"duration": result.ProcessingTime,
	})

	if result.Valid {
		entry.Info("Plugin verified")
		return
	}

	for _, e := range result.ManifestErrors {
		entry.Warnf("Manifest error [%s]: %s", e.Field, e.Message)
	}
	for _, e := range result.PermissionIssues {
		entry.Warnf("Permission issue: %s", e.Message)
	}
	if result.Reason != "" {
		entry.Warnf("Rejected: %s", result.Reason)
	}
	entry.Error("Plugin failed verification")
}

// watchAndVerify re-runs verification whenever a plugin root changes
func watchAndVerify(ctx context.Context, verifier *plugins.Verifier, roots []string, maxConcurrent int, logger *logrus.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watching := 0
	for _, root := range roots {
		if err := watcher.Add(root); err != nil {
			logger.Debugf("Not watching %s: %v", root, err)
			continue
		}
		watching++
	}
	if watching == 0 {
		logger.Warn("No plugin roots available to watch, exiting")
		return nil
	}
	logger.Infof("Watching %d plugin root(s) for changes", watching)

	var settle *time.Timer
	settleCh := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			logger.Debugf("Filesystem event: %s", event)
			// Coalesce bursts of events into one re-verification.
			if settle != nil {
				settle.Stop()
			}
			settle = time.AfterFunc(watchSettle, func() {
				select {
				case settleCh <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("Watcher error: %v", err)

		case <-settleCh:
			verifyAll(ctx, verifier, roots, maxConcurrent, logger)
		}
	}
}
