package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/farmlane/delivery-infra/internal/stack"
	"github.com/farmlane/delivery-infra/internal/template"
)

// newWatchCmd creates the "watch" subcommand for re-synthesizing when the
// function sources, the API definition or the schema script change.
func newWatchCmd(verbose *bool) *cobra.Command {
	var (
		debounce   time.Duration
		outputFile string
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-synthesize on input changes",
		Long: `Watch monitors the synthesis inputs and re-runs on every change.

Watched inputs:
- the function source directory
- the API definition template
- the database schema script

Examples:
    delivery-infra watch -o template.json
    delivery-infra watch --debounce 1s`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd.Context(), *verbose, debounce, outputFile)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", 500*time.Millisecond, "Debounce duration for rapid changes")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "template.json", "Output file for the template")

	return cmd
}

func runWatch(ctx context.Context, verbose bool, debounce time.Duration, outputFile string) error {
	log, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	cfg, err := stack.Load()
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	for _, dir := range watchDirs(cfg) {
		if err := addDirRecursive(watcher, dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		fmt.Printf("Watching: %s\n", dir)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	fmt.Println("Running initial synthesis...")
	synthOnce(ctx, log, outputFile)

	var debounceTimer *time.Timer
	rebuildChan := make(chan struct{}, 1)

	fmt.Println("\nWatching for changes... (Ctrl+C to stop)")

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Build output is an input of nothing; re-synthesizing on our
			// own writes would loop forever.
			if filepath.Base(event.Name) == filepath.Base(outputFile) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounce, func() {
				select {
				case rebuildChan <- struct{}{}:
				default:
				}
			})

		case <-rebuildChan:
			fmt.Printf("\n[%s] Change detected, re-synthesizing...\n", time.Now().Format("15:04:05"))
			synthOnce(ctx, log, outputFile)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watch error: %v\n", err)

		case <-sigChan:
			fmt.Println("\nStopping watch...")
			return nil
		}
	}
}

// watchDirs lists the directories holding synthesis inputs.
func watchDirs(cfg stack.Config) []string {
	var dirs []string
	seen := make(map[string]bool)

	add := func(dir string) {
		if dir == "" || seen[dir] {
			return
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}

	add(cfg.SourceDir)
	add(filepath.Dir(cfg.APISchemaPath))
	add(filepath.Dir(cfg.SQLScriptPath))
	return dirs
}

// addDirRecursive adds a directory and all subdirectories to the watcher.
func addDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			base := filepath.Base(path)
			if strings.HasPrefix(base, ".") && path != dir {
				return filepath.SkipDir
			}
			// Build output churns on every local build.
			if base == "build" {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
}

// synthOnce runs one synthesis pass and writes the template. Failures are
// reported but keep the watch alive.
func synthOnce(ctx context.Context, log *zap.Logger, outputFile string) {
	result, err := synthesize(ctx, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Synthesis error: %v\n", err)
		return
	}

	data, err := template.ToJSON(result.Template)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Output error: %v\n", err)
		return
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
		return
	}
	fmt.Printf("Synthesis successful, wrote %s (%d resources)\n", outputFile, len(result.Template.Resources))
}
