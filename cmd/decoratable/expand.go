package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/toyz/decoratable/internal/cli"
)

func newExpandCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "expand <file>",
		Short: "Print the code generated for one Go or Swift file",
		Long: `Expand prints the decorators that generate would write for the annotated
declarations of a single file. Nothing is written to disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			generator := cli.NewGenerator(a.config, a.diagnostics, a.logger)

			content, err := generator.ExpandFile(args[0])
			if err != nil {
				generator.Reporter().ReportError(err)
				return reportedError{err}
			}
			if content == "" {
				a.diagnostics.Warn("%s declares nothing to decorate", args[0])
				return nil
			}

			_, err = fmt.Fprint(a.stdout, content)
			return err
		},
	}
}
