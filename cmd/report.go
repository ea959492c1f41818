package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskboard/internal/app"
	"github.com/adanyl0v/taskboard/internal/report"
)

var (
	reportFile    string
	reportNow     string
	reportVerbose bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard for a task file",
	Long: `Read tasks from a YAML file and print the dashboard as YAML.

The file holds a "tasks" list; every entry has title, priority (1-5),
status (Pending or Finished), start_time and end_time.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVarP(&reportFile, "file", "f", "", "Task file (required)")
	reportCmd.Flags().StringVar(&reportNow, "now", "", "Reference time in RFC 3339 (default: current time)")
	reportCmd.Flags().BoolVarP(&reportVerbose, "verbose", "v", false, "Log debug messages to stderr")
	_ = reportCmd.MarkFlagRequired("file")
}

func runReport(cmd *cobra.Command, args []string) error {
	app.InitCLILogger(reportVerbose)
	logger := app.Logger()

	now, err := parseNow(reportNow)
	if err != nil {
		return err
	}

	f, err := os.Open(reportFile)
	if err != nil {
		return fmt.Errorf("failed to open task file: %w", err)
	}
	defer f.Close()

	tasks, err := report.Read(f)
	if err != nil {
		logger.Error().
			Err(err).
			Str("file", reportFile).
			Msg("failed to read tasks")
		return err
	}
	logger.Debug().
		Int("count", len(tasks)).
		Time("now", now).
		Msg("read tasks")

	return report.Write(cmd.OutOrStdout(), report.Build(tasks, now))
}

func parseNow(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}

	now, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --now value: %w", err)
	}
	return now, nil
}
