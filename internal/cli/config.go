package cli

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/toyz/decoratable/internal/errors"
	"github.com/toyz/decoratable/internal/utils"
)

// Dialects accepted by the dialect setting
const (
	DialectAuto  = "auto"
	DialectGo    = "go"
	DialectSwift = "swift"
)

const (
	// ConfigFileName is searched for in the working directory and the module root
	ConfigFileName = ".decoratable"

	// EnvPrefix prefixes environment overrides, e.g. DECORATABLE_JOBS
	EnvPrefix = "DECORATABLE"

	DefaultGoOutput    = "autogen_decorators.go"
	DefaultSwiftSuffix = "+Decorator"
)

// Config holds the configuration for the CLI generator
type Config struct {
	// Dialect restricts scanning to Go or Swift sources; auto scans both
	Dialect string `mapstructure:"dialect"`

	// Output is the name of the file written into each Go package
	Output string `mapstructure:"output"`

	// SwiftSuffix is appended to a Swift file's base name to name its output
	SwiftSuffix string `mapstructure:"swift_suffix"`

	// Header adds the "Code generated" banner to generated files
	Header bool `mapstructure:"header"`

	// Jobs bounds the number of concurrent expansions
	Jobs int `mapstructure:"jobs"`

	// DryRun prints the generated files instead of writing them
	DryRun bool `mapstructure:"dry_run"`

	Verbose  bool   `mapstructure:"verbose"`
	Quiet    bool   `mapstructure:"quiet"`
	LogLevel string `mapstructure:"log_level"`

	// Module overrides the module path read from go.mod
	Module string `mapstructure:"module"`
}

// DefaultConfig returns the configuration used when nothing is set
func DefaultConfig() Config {
	return Config{
		Dialect:     DialectAuto,
		Output:      DefaultGoOutput,
		SwiftSuffix: DefaultSwiftSuffix,
		Header:      true,
		Jobs:        runtime.GOMAXPROCS(0),
		LogLevel:    "warn",
	}
}

// flagKeys maps command line flag names to configuration keys
var flagKeys = map[string]string{
	"dialect":      "dialect",
	"output":       "output",
	"swift-suffix": "swift_suffix",
	"header":       "header",
	"jobs":         "jobs",
	"dry-run":      "dry_run",
	"verbose":      "verbose",
	"quiet":        "quiet",
	"log-level":    "log_level",
	"module":       "module",
}

// NewViper creates a viper instance with the defaults, the environment
// binding and the config file search path
func NewViper(searchPaths ...string) *viper.Viper {
	defaults := DefaultConfig()

	v := viper.New()
	v.SetDefault("dialect", defaults.Dialect)
	v.SetDefault("output", defaults.Output)
	v.SetDefault("swift_suffix", defaults.SwiftSuffix)
	v.SetDefault("header", defaults.Header)
	v.SetDefault("jobs", defaults.Jobs)
	v.SetDefault("dry_run", defaults.DryRun)
	v.SetDefault("verbose", defaults.Verbose)
	v.SetDefault("quiet", defaults.Quiet)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("module", defaults.Module)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	for _, path := range searchPaths {
		v.AddConfigPath(path)
	}
	return v
}

// BindFlags binds the command line flags present in flags to their keys
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return errors.WrapConfigurationError(key, "bind flag for", err)
		}
	}
	return nil
}

// LoadConfig reads the config file when one exists and returns the merged
// configuration. Precedence is flags, then environment, then file, then defaults.
func LoadConfig(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrors.As(err, &notFound) {
			return Config{}, errors.WrapConfigurationError(ConfigFileName, "read", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return Config{}, errors.WrapConfigurationError(ConfigFileName, "decode", err)
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Validate checks the values that have a closed set of options
func (c Config) Validate() error {
	switch c.Dialect {
	case DialectAuto, DialectGo, DialectSwift:
	default:
		return errors.ConfigurationError("dialect", fmt.Sprintf("unknown dialect %q, expected auto, go or swift", c.Dialect))
	}

	if c.Output == "" || strings.ContainsAny(c.Output, `/\`) || !strings.HasSuffix(c.Output, ".go") {
		return errors.ConfigurationError("output", fmt.Sprintf("%q must be a plain .go file name", c.Output))
	}
	if strings.HasSuffix(c.Output, "_test.go") {
		return errors.ConfigurationError("output", "generated files cannot be test files")
	}
	if c.SwiftSuffix == "" || strings.ContainsAny(c.SwiftSuffix, `/\`) {
		return errors.ConfigurationError("swift_suffix", fmt.Sprintf("%q is not a valid file name suffix", c.SwiftSuffix))
	}
	if c.Jobs < 1 {
		return errors.ConfigurationError("jobs", fmt.Sprintf("jobs must be at least 1, got %d", c.Jobs))
	}
	if c.Verbose && c.Quiet {
		return errors.ConfigurationError("verbose", "verbose and quiet cannot be combined")
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return errors.ConfigurationError("log_level", err.Error())
	}
	return nil
}

// DiagnosticLevel returns the user facing output level
func (c Config) DiagnosticLevel() utils.DiagnosticLevel {
	switch {
	case c.Quiet:
		return utils.DiagnosticError
	case c.Verbose:
		return utils.DiagnosticVerbose
	default:
		return utils.DiagnosticInfo
	}
}

// ScansGo reports whether Go packages take part in the run
func (c Config) ScansGo() bool {
	return c.Dialect == DialectAuto || c.Dialect == DialectGo
}

// ScansSwift reports whether Swift files take part in the run
func (c Config) ScansSwift() bool {
	return c.Dialect == DialectAuto || c.Dialect == DialectSwift
}
