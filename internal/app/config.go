package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds everything an App needs. Zero values mean "not set on the
// command line" and are filled from the config file, then from defaults.
type Config struct {
	InputPath  string // "" or "-" reads stdin
	ConfigPath string // optional HCL file

	TimeLimit time.Duration
	LogFormat string
	LogLevel  string
	Trace     bool
}

const (
	defaultLogFormat = "text"
	defaultLogLevel  = "warn"
	traceCapacity    = 1000
)

func NewConfig(cfg Config) (*Config, error) {
	if cfg.TimeLimit < 0 {
		return nil, errors.New("time limit must be positive")
	}
	if err := validateLogLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if err := validateLogFormat(cfg.LogFormat); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validateLogLevel(level string) error {
	if _, ok := logLevels[level]; ok || level == "" {
		return nil
	}
	return fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", level)
}

func validateLogFormat(format string) error {
	switch format {
	case "", "text", "json":
		return nil
	}
	return fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", format)
}

// firstSet returns the first non-zero value.
func firstSet[T comparable](vals ...T) T {
	var zero T
	for _, v := range vals {
		if v != zero {
			return v
		}
	}
	return zero
}
