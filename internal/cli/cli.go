package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/specialistvlad/gridflow/internal/app"
	"github.com/specialistvlad/gridflow/internal/monitor"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

const longHelp = `gridflow - a lock-step dataflow runner for array-valued component graphs.

Arguments:
  GRAPH_PATH
    Path to a graph file (.hcl, .yaml, .yml) or a directory holding them.`

type flags struct {
	graphs          []string
	ticks           uint64
	watch           []string
	logFormat       string
	logLevel        string
	healthcheckPort int
	workers         int
	interval        time.Duration
	monitorURL      string
	monitorEvent    string
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	if args == nil {
		args = []string{}
	}

	var f flags
	var positional []string
	ran := false

	cmd := &cobra.Command{
		Use:           "gridflow [options] [GRAPH_PATH...]",
		Short:         "Run a component graph for a number of ticks",
		Long:          longHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, a []string) error {
			ran = true
			positional = a
			return nil
		},
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	fs := cmd.Flags()
	fs.StringSliceVarP(&f.graphs, "graph", "g", nil, "Path to a graph file or directory. Repeatable.")
	fs.Uint64Var(&f.ticks, "ticks", 1, "Number of ticks to run. 0 runs until interrupted.")
	fs.StringArrayVarP(&f.watch, "watch", "w", nil, "Port address to report after the run, e.g. 'inner.p.out'. Repeatable.")
	fs.IntVar(&f.healthcheckPort, "healthcheck-port", 0, "Port for the HTTP health check and metrics server. 0 is disabled.")
	fs.StringVar(&f.logFormat, "log-format", "json", "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.IntVar(&f.workers, "workers", 10, "Number of components stepped concurrently within a phase.")
	fs.DurationVar(&f.interval, "interval", 0, "Pause between ticks, e.g. '100ms'.")
	fs.StringVar(&f.monitorURL, "monitor-url", "", "socket.io server that receives watched ports after every tick.")
	fs.StringVar(&f.monitorEvent, "monitor-event", monitor.DefaultEvent, "Event name used for monitor snapshots.")

	if err := cmd.Execute(); err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	if !ran {
		// --help was printed.
		return nil, true, nil
	}
	slog.Debug("Arguments parsed successfully.")

	paths := append(f.graphs, positional...)
	if len(paths) == 0 {
		slog.Debug("No graph path provided, printing usage and exiting.")
		_ = cmd.Help()
		return nil, true, nil
	}

	logFormat := strings.ToLower(f.logFormat)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(f.logLevel)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	cfg, err := app.NewConfig(app.Config{
		GraphPaths:      paths,
		Ticks:           f.ticks,
		Watch:           f.watch,
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: f.healthcheckPort,
		Workers:         f.workers,
		Interval:        f.interval,
		MonitorURL:      f.monitorURL,
		MonitorEvent:    f.monitorEvent,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

// AsExitError reports whether err carries an exit code.
func AsExitError(err error) (*ExitError, bool) {
	var exitErr *ExitError
	ok := errors.As(err, &exitErr)
	return exitErr, ok
}
