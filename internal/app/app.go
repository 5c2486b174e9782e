// Package app wires configuration, logging and the evaluator together and
// runs the line-oriented read-eval-print loop.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/vic/lambdabot/internal/config"
	"github.com/vic/lambdabot/internal/ctxlog"
	"github.com/vic/lambdabot/pkg/eval"
)

const maxLineSize = 1 << 20

// App owns the evaluator and the writers replies and diagnostics go to.
type App struct {
	outW      io.Writer
	errW      io.Writer
	logger    *slog.Logger
	evaluator *eval.Evaluator
	trace     bool
}

// NewApp loads the config file named in cfg, merges it under the
// command-line values and preloads its definitions.
func NewApp(ctx context.Context, outW, errW io.Writer, cfg *Config) (*App, error) {
	file, err := config.Load(ctx, cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := validateLogLevel(file.LogLevel); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.ConfigPath, err)
	}
	if err := validateLogFormat(file.LogFormat); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.ConfigPath, err)
	}

	logger := newLogger(
		firstSet(cfg.LogLevel, file.LogLevel, defaultLogLevel),
		firstSet(cfg.LogFormat, file.LogFormat, defaultLogFormat),
		errW,
	)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	opts := []eval.Option{
		eval.WithTimeLimit(firstSet(cfg.TimeLimit, file.TimeLimit, eval.DefaultTimeLimit)),
		eval.WithDiagnostics(errW),
	}
	if cfg.Trace {
		opts = append(opts, eval.WithTrace(traceCapacity))
	}
	evaluator := eval.New(opts...)

	for _, d := range file.Defines {
		if err := evaluator.Define(ctx, d.Name, d.Term); err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.ConfigPath, err)
		}
	}
	logger.Debug("Evaluator ready.", "time_limit", evaluator.TimeLimit(), "defines", evaluator.Environment().Len())

	return &App{
		outW:      outW,
		errW:      errW,
		logger:    logger,
		evaluator: evaluator,
		trace:     cfg.Trace,
	}, nil
}

// Evaluator returns the application's evaluator. This is primarily for testing.
func (a *App) Evaluator() *eval.Evaluator {
	return a.evaluator
}

// Run evaluates in line by line and writes one reply per line. Blank lines
// and lines starting with '#' are skipped. Cancelling ctx stops the loop even
// while it waits for input; the line being reduced is abandoned at its next
// deadline check.
func (a *App) Run(ctx context.Context, in io.Reader) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	lines, errc := readLines(ctx, in)

	count := 0
loop:
	for ctx.Err() == nil {
		var raw string
		var ok bool
		select {
		case <-ctx.Done():
			break loop
		case raw, ok = <-lines:
		}
		if !ok {
			if err := <-errc; err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			break loop
		}

		line := strings.TrimRight(raw, "\r")
		if trimmed := strings.TrimSpace(line); trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		count++

		res, err := a.evaluator.Eval(ctx, line)
		if ctx.Err() != nil {
			break loop
		}
		if a.trace && res != nil {
			for _, ev := range res.Trace {
				fmt.Fprintf(a.errW, "%6d  %s\n", ev.Step, ev.Term)
			}
		}
		if _, werr := fmt.Fprintln(a.outW, eval.Render(res, err)); werr != nil {
			return fmt.Errorf("failed to write reply: %w", werr)
		}
	}

	if ctx.Err() != nil {
		a.logger.Info("Interrupted.", "lines", count)
		return nil
	}
	a.logger.Debug("App.Run method finished.", "lines", count)
	return nil
}

// readLines scans in on its own goroutine so that a blocked read does not hold
// up cancellation. errc yields the scanner error, if any, once lines is closed.
// The goroutine exits when ctx is done, unless it is blocked in a Read.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		defer close(lines)

		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}
