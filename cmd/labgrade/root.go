package main

import (
	"log/slog"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "labgrade",
		Short: "labgrade - autograder for JavaScript lab submissions",
		Long: `labgrade grades a student's JavaScript lab submission.

It strips comments from the student's script, runs the rubric's checks
against what is left, adds marks for submitting on time and writes
feedback, a grade CSV and CI summaries.`,
		Version:      version,
		SilenceUsage: true,
	}

	debugLogging := cmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if *debugLogging {
			slog.SetLogLoggerLevel(slog.LevelDebug)
		}
	}

	cmd.AddCommand(newGradeCommand())
	cmd.AddCommand(newStripCommand())
	cmd.AddCommand(newRubricCommand())
	cmd.AddCommand(newInitCommand())

	return cmd
}

func execute() error {
	rootCmd := newRootCommand()
	return rootCmd.Execute()
}
