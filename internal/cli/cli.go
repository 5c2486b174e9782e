// Package cli turns command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vic/lambdabot/internal/app"
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

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("lambdabot", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
lambdabot - reduces untyped lambda-calculus terms to beta-normal form.

Usage:
  lambdabot [options] [FILE]

Arguments:
  FILE
    File with one term per line. Reads stdin when omitted or "-".

Syntax:
  \x y.body   abstraction (parameters nest to the right)
  f a b       application (left associative)
  let n = t   bind n to the normal form of t for later lines

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL config file.")
	timeLimitFlag := flagSet.Duration("time-limit", 0, "Time budget per evaluation (default 1s, or time_limit from the config file).")
	logFormatFlag := flagSet.String("log-format", "", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	traceFlag := flagSet.Bool("trace", false, "Print every intermediate term to stderr.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	if flagSet.NArg() > 1 {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("expected at most one input file, got %d", flagSet.NArg())}
	}
	if *timeLimitFlag < 0 {
		return nil, false, &ExitError{Code: 2, Message: "invalid time-limit: must be positive"}
	}

	config, err := app.NewConfig(app.Config{
		InputPath:  flagSet.Arg(0),
		ConfigPath: *configFlag,
		TimeLimit:  *timeLimitFlag,
		LogFormat:  strings.ToLower(*logFormatFlag),
		LogLevel:   strings.ToLower(*logLevelFlag),
		Trace:      *traceFlag,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
