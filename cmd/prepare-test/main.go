// Package main is the entry point for prepare-test.
package main

import (
	"fmt"
	"io"
	"os"

	"prepare-test/internal/config"
	"prepare-test/internal/dispatch"
	"prepare-test/internal/events"
	"prepare-test/internal/fsops"
	"prepare-test/internal/logger"
	"prepare-test/internal/scenario"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
)

type options struct {
	configFile  string
	workDir     string
	module      string
	logLevel    string
	verbose     bool
	trace       bool
	summary     bool
	interactive bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("", "%v", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "prepare-test <scenarioName>",
		Short: "Reset leftover artifacts and stage the module config for a test scenario",
		Long: `prepare-test removes the module log and swap files of the previous run,
copies the scenario's preset over cfg/<module>.config and prints which
modules and carpinchos must be started.

Run "prepare-test list" to see every known scenario. A name that starts
with "-" must follow "--", as in "prepare-test -- -name".`,
		Version:       version,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", "", "settings file (YAML/JSON/TOML)")
	f.StringVar(&opts.workDir, "workdir", "", "working directory (default: current directory)")
	f.StringVar(&opts.module, "module", "", "module whose config is overwritten (default: swamp)")
	f.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	f.BoolVar(&opts.trace, "trace", false, "print audit events as JSON lines to stderr")
	f.BoolVar(&opts.summary, "summary", false, "print a run summary after the instructions")
	f.BoolVarP(&opts.interactive, "interactive", "i", false, "pick a scenario interactively when none is given")

	return cmd
}

// loadSettings は設定ファイル、環境変数、フラグの順に設定を決定する
func loadSettings(opts options) (*config.FileConfig, error) {
	cfg := config.Default()
	if opts.configFile != "" {
		loaded, err := config.LoadFile(opts.configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.ApplyEnv(os.Getenv)

	if opts.workDir != "" {
		cfg.Prep.WorkDir = opts.workDir
	}
	if opts.module != "" {
		cfg.Prep.Module = opts.module
	}
	if opts.logLevel != "" {
		cfg.Prep.LogLevel = opts.logLevel
	}
	if opts.verbose {
		cfg.Prep.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}
	return cfg, nil
}

func run(cmd *cobra.Command, opts options, args []string) error {
	cfg, err := loadSettings(opts)
	if err != nil {
		return err
	}
	logger.Default.SetLevel(cfg.Level())

	cwd, err := os.Getwd()
	if err != nil {
		return errors.Wrap(err, "cannot determine working directory")
	}
	ctx, err := cfg.ToContext(cwd)
	if err != nil {
		return err
	}

	registry := scenario.Builtin()
	if len(args) == 0 && opts.interactive {
		if name, ok := pickScenario(registry.Names()); ok {
			args = []string{name}
		}
	}

	out := cmd.OutOrStdout()
	bus := events.NewBus()
	defer bus.Close()
	var trail <-chan events.Event
	if opts.trace {
		trail = bus.Subscribe()
	}

	d := dispatch.New(ctx, registry, fsops.OS{}, out)
	d.SetEventBus(bus)
	d.SetProgram(cmd.Root().Name())

	outcome := d.Dispatch(args)
	logger.Debug("", "dispatch finished in state %s", outcome.State)

	if opts.trace {
		writeTrace(cmd.ErrOrStderr(), events.Drain(trail))
		if n := bus.Dropped(); n > 0 {
			logger.Warn("", "%d audit events were dropped from the trace", n)
		}
	}
	if opts.summary {
		printSummary(out, outcome)
	}
	return nil
}

func printSummary(out io.Writer, o dispatch.Outcome) {
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprint(out, o.Report())
}
