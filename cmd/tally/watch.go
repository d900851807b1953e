package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nboyd-dev/tally/internal/meter"
	"github.com/nboyd-dev/tally/internal/output"
	"github.com/nboyd-dev/tally/internal/watch"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Watch for file changes and re-count",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: 500 * time.Millisecond,
				Usage: "Quiet period before a change batch triggers a re-count",
			},
		},
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	paths := getPaths(c)
	roots := make([]string, 0, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", p, err)
		}
		roots = append(roots, abs)
	}

	format := output.ParseFormat(c.String("format"))
	colored := !c.Bool("no-color")

	recount := func() {
		snap, err := meter.Run(roots, meter.Options{Config: cfg})
		if err != nil {
			color.Red("Count error: %v", err)
			return
		}

		formatter, err := output.NewFormatter(format, "", colored)
		if err != nil {
			color.Red("Output error: %v", err)
			return
		}
		if err := renderLanguages(formatter, snap); err != nil {
			color.Red("Output error: %v", err)
		}
	}

	recount()

	watcher, err := watch.New(roots, cfg, c.Duration("debounce"), nil)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	watcher.SetCallback(func() {
		color.Yellow("\nChange detected")
		fmt.Println(strings.Repeat("-", 40))
		recount()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nStopping watch...")
		cancel()
	}()

	color.Cyan("Watching for changes in %s...", strings.Join(roots, ", "))
	color.Cyan("Press Ctrl+C to stop")
	fmt.Println()

	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
