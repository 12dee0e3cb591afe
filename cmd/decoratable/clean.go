package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/decoratable/internal/cli"
)

func newCleanCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean [patterns...]",
		Short: "Remove generated decorator files below the patterns",
		RunE: func(cmd *cobra.Command, args []string) error {
			cleaner := cli.NewCleaner(a.config, a.logger)

			removed, err := cleaner.CleanGeneratedFiles(defaultPatterns(args))
			a.diagnostics.Indent()
			for _, file := range removed {
				if a.config.DryRun {
					a.diagnostics.List("would remove %s", file)
				} else {
					a.diagnostics.List("removed %s", file)
				}
			}
			a.diagnostics.Unindent()
			if err != nil {
				a.diagnostics.Error("Clean operation failed: %v", err)
				return reportedError{err}
			}

			a.diagnostics.Success("%d generated file(s) removed", len(removed))
			return nil
		},
	}
}
