// Package cli is the rasterlab command line: configuration, logging, image
// I/O and the cobra command tree around the stdimg engine.
package cli

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// app carries state shared by the subcommands of one invocation.
type app struct {
	cfgPath string
	cfg     Config
	log     zerolog.Logger

	logLevel  string
	logFormat string
	outputDir string
	precision int
}

// NewRootCmd builds the rasterlab command tree. Logs go to stderr, results
// to stdout.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{log: zerolog.Nop()}
	root := &cobra.Command{
		Use:           "rasterlab",
		Short:         "Filter, equalise and measure 8-bit raster images",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Flags(), stderr)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	a.bindGlobalFlags(root.PersistentFlags())

	root.AddCommand(
		a.newListCmd(),
		a.newApplyCmd(),
		a.newCharacteristicsCmd(),
		a.newCompareCmd(),
		a.newHistogramCmd(),
		a.newVersionCmd(),
		a.newUpdateCmd(),
	)
	return root
}

func (a *app) bindGlobalFlags(fs *pflag.FlagSet) {
	fs.StringVar(&a.cfgPath, "config", "", "path to a TOML config file (default ./"+DefaultConfigFile+" if present)")
	fs.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	fs.StringVar(&a.logFormat, "log-format", "", "log format: console or json")
	fs.StringVar(&a.outputDir, "output-dir", "", "directory for outputs without an explicit path")
	fs.IntVar(&a.precision, "precision", 0, "decimals printed for single values")
}

// setup resolves the configuration and builds the logger. Flags that were set
// explicitly win over the file and the environment.
func (a *app) setup(fs *pflag.FlagSet, stderr io.Writer) error {
	cfg, err := LoadConfig(a.cfgPath)
	if err != nil {
		return err
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if fs.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if fs.Changed("output-dir") {
		cfg.OutputDir = a.outputDir
	}
	if fs.Changed("precision") {
		cfg.Precision = a.precision
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := NewLogger(stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

// Execute runs the command tree against the process arguments.
func Execute(stdout, stderr io.Writer) error {
	return NewRootCmd(stdout, stderr).Execute()
}
