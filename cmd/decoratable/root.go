package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toyz/decoratable/internal/cli"
	"github.com/toyz/decoratable/internal/utils"
)

// app carries what every subcommand needs once flags and config are loaded
type app struct {
	viper       *viper.Viper
	config      cli.Config
	diagnostics *utils.DiagnosticSystem
	logger      zerolog.Logger
	stdout      io.Writer
	stderr      io.Writer
}

// NewRootCommand creates the decoratable command tree
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdout: stdout, stderr: stderr}

	cmd := &cobra.Command{
		Use:   "decoratable",
		Short: "Generate forwarding decorators for annotated interfaces and protocols",
		Long: `decoratable generates a Decorator type for every Go interface marked with
//decoratable:generate and every Swift protocol marked with @Decoratable.

The decorator holds the wrapped value and forwards each method to it, so
wrappers that change a single method only need to override that method.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.PersistentFlags()
	defaults := cli.DefaultConfig()
	flags.String("dialect", defaults.Dialect, "Sources to process: auto, go or swift")
	flags.String("output", defaults.Output, "Name of the file generated in each Go package")
	flags.String("swift-suffix", defaults.SwiftSuffix, "Suffix appended to a Swift file name for its generated file")
	flags.Bool("header", defaults.Header, "Write the generated file banner")
	flags.IntP("jobs", "j", defaults.Jobs, "Number of packages and files expanded concurrently")
	flags.BoolP("dry-run", "n", false, "Print what would be written without touching any file")
	flags.BoolP("verbose", "v", false, "Enable verbose output and detailed error reporting")
	flags.BoolP("quiet", "q", false, "Only show errors")
	flags.String("log-level", defaults.LogLevel, "Level of internal trace logging: debug, info, warn, error")
	flags.String("module", "", "Module path used for imports (defaults to the go.mod module)")

	cmd.AddCommand(
		newGenerateCommand(a),
		newCleanCommand(a),
		newExpandCommand(a),
		newVersionCommand(a),
	)
	return cmd
}

// load merges flags, environment and config file into the app state
func (a *app) load(cmd *cobra.Command) error {
	a.viper = cli.NewViper(configSearchPaths()...)
	if err := cli.BindFlags(a.viper, cmd.Flags()); err != nil {
		return err
	}

	config, err := cli.LoadConfig(a.viper)
	if err != nil {
		return err
	}
	a.config = config

	a.diagnostics = utils.NewDiagnosticSystem(config.DiagnosticLevel())
	if a.stdout != os.Stdout || a.stderr != os.Stderr {
		a.diagnostics.SetOutput(a.stdout, a.stderr)
	}

	a.logger, err = cli.NewLogger(a.stderr, config.LogLevel)
	if err != nil {
		return err
	}
	if used := a.viper.ConfigFileUsed(); used != "" {
		a.logger.Debug().Str("file", used).Msg("loaded configuration")
	}
	return nil
}

// configSearchPaths returns the working directory and, when different, the
// root of the module containing it
func configSearchPaths() []string {
	cwd, err := os.Getwd()
	if err != nil {
		return []string{"."}
	}
	paths := []string{cwd}
	if goMod, err := utils.FindGoMod(cwd); err == nil {
		if root := filepath.Dir(goMod); root != cwd {
			paths = append(paths, root)
		}
	}
	return paths
}

// defaultPatterns is used when no pattern is given. go generate runs in the
// directory of $GOFILE, so "." covers that case too.
func defaultPatterns(args []string) []string {
	if len(args) > 0 {
		return args
	}
	return []string{"."}
}

// reportedError marks an error that was already shown to the user
type reportedError struct {
	error
}

func (e reportedError) Unwrap() error {
	return e.error
}

// Execute runs the command tree and returns the process exit code
func Execute(cmd *cobra.Command, stderr io.Writer) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}

	var reported reportedError
	if !stderrors.As(err, &reported) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return 1
}
