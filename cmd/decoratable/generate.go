package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/decoratable/internal/cli"
)

func newGenerateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate [patterns...]",
		Short: "Generate decorators for the annotated declarations below the patterns",
		Long: `Generate scans the patterns for annotated declarations and writes one
decorator file per Go package and per Swift source file.

Patterns:
  ./...              Scan the current directory and all subdirectories
  ./internal/...     Scan internal and all its subdirectories
  ./pkg/store        Scan only that directory
  Shapes.swift       Expand a single Swift file

Without patterns the current directory is scanned, which is what a
//go:generate decoratable generate directive needs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			generator := cli.NewGenerator(a.config, a.diagnostics, a.logger)

			err := generator.Run(cmd.Context(), defaultPatterns(args))
			if err != nil {
				generator.Reporter().ReportError(err)
				return reportedError{err}
			}

			summary := generator.GetSummary()
			a.diagnostics.Summary("Generation complete", map[string]interface{}{
				"Packages processed":  summary.PackagesProcessed,
				"Swift files scanned": summary.SwiftFilesScanned,
				"Declarations found":  summary.ContractsFound,
				"Decorators emitted":  summary.DecoratorsEmitted,
				"Files written":       len(summary.GeneratedFiles),
				"Files removed":       len(summary.RemovedFiles),
			})
			if a.config.Verbose {
				generator.Reporter().ReportSuccess(a.stdout, summary)
			}
			a.diagnostics.GenerationComplete()
			return nil
		},
	}
}
