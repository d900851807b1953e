package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nboyd-dev/tally/internal/meter"
	"github.com/nboyd-dev/tally/internal/output"
	"github.com/nboyd-dev/tally/internal/progress"
)

func countCmd() *cli.Command {
	return &cli.Command{
		Name:      "count",
		Usage:     "Count lines of code under the given paths",
		ArgsUsage: "[path...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-recurse",
				Usage: "Only scan the immediate children of each path",
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Execution backend: auto, sync, pool",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Worker count for the pool backend (0 = logical CPUs)",
			},
			&cli.IntFlag{
				Name:  "queue",
				Usage: "Work queue capacity for the pool backend (0 = default)",
			},
			&cli.BoolFlag{
				Name:  "dedupe",
				Usage: "Skip files whose exact content was already counted",
			},
			&cli.BoolFlag{
				Name:  "by-file",
				Usage: "Also report per-file counts",
			},
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort language rows by: code, files, total, blank, comment, language",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Additional gitignore-syntax exclusion pattern (repeatable)",
			},
		},
		Action: runCount,
	}
}

func runCount(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	if c.Bool("no-recurse") {
		cfg.Scan.Recurse = false
	}
	if v := c.String("backend"); v != "" {
		cfg.Scan.Backend = v
	}
	if v := c.Int("workers"); v != 0 {
		cfg.Scan.Workers = v
	}
	if v := c.Int("queue"); v != 0 {
		cfg.Scan.QueueLength = v
	}
	if c.Bool("dedupe") {
		cfg.Scan.Dedupe = true
	}
	if c.Bool("by-file") {
		cfg.Output.ByFile = true
	}
	if v := c.String("sort"); v != "" {
		cfg.Output.Sort = v
	}
	cfg.Exclude.Patterns = append(cfg.Exclude.Patterns, c.StringSlice("exclude")...)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var tracker *progress.Tracker
	if !c.Bool("no-progress") {
		tracker = progress.NewSpinner("Counting lines...")
	}

	snap, err := meter.Run(getPaths(c), meter.Options{
		Config: cfg,
		OnFile: tracker.Tick,
	})
	if err != nil {
		tracker.FinishError(err)
		return err
	}
	tracker.FinishSuccess()

	formatter, err := output.NewFormatter(output.ParseFormat(c.String("format")), c.String("output"), !c.Bool("no-color"))
	if err != nil {
		return err
	}
	defer formatter.Close()

	if err := renderLanguages(formatter, snap); err != nil {
		return err
	}
	// JSON output already carries the per-file rows inside the snapshot.
	if cfg.Output.ByFile && formatter.Format() != output.FormatJSON {
		return renderFiles(formatter, snap)
	}
	return nil
}

func renderLanguages(formatter *output.Formatter, snap *meter.Snapshot) error {
	rows := make([][]string, 0, len(snap.Languages))
	for _, l := range snap.Languages {
		rows = append(rows, []string{
			l.Language,
			fmt.Sprintf("%d", l.Files),
			fmt.Sprintf("%d", l.Blank),
			fmt.Sprintf("%d", l.Comment),
			fmt.Sprintf("%d", l.Code),
			fmt.Sprintf("%d", l.Total),
		})
	}

	table := output.NewTable(
		"Lines of Code",
		[]string{"Language", "Files", "Blank", "Comment", "Code", "Total"},
		rows,
		[]string{
			fmt.Sprintf("%d languages, %d ignored, %.2fs", len(snap.Languages), snap.Ignored, snap.Elapsed),
			fmt.Sprintf("%d", snap.Total.Files),
			fmt.Sprintf("%d", snap.Total.Blank),
			fmt.Sprintf("%d", snap.Total.Comment),
			fmt.Sprintf("%d", snap.Total.Code),
			fmt.Sprintf("%d", snap.Total.Total),
		},
		snap,
	)

	if err := formatter.Output(table); err != nil {
		return err
	}

	if len(snap.Errors) > 0 && formatter.Format() == output.FormatText {
		color.Yellow("%d files could not be processed", len(snap.Errors))
	}
	return nil
}

func renderFiles(formatter *output.Formatter, snap *meter.Snapshot) error {
	rows := make([][]string, 0, len(snap.Files))
	for _, f := range snap.Files {
		rows = append(rows, []string{
			f.Path,
			f.Language,
			fmt.Sprintf("%d", f.Blank),
			fmt.Sprintf("%d", f.Comment),
			fmt.Sprintf("%d", f.Code),
			fmt.Sprintf("%d", f.Total),
		})
	}

	table := output.NewTable(
		"Files",
		[]string{"Path", "Language", "Blank", "Comment", "Code", "Total"},
		rows,
		nil,
		snap.Files,
	)
	return formatter.Output(table)
}
