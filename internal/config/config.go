// Package config loads the optional HCL configuration file: evaluation time
// limit, logging settings and `define` blocks that preload the environment.
package config

import (
	"context"
	"fmt"
	"math"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/vic/lambdabot/internal/ctxlog"
)

// File is the decoded configuration. Zero values mean "not set".
type File struct {
	TimeLimit time.Duration
	LogLevel  string
	LogFormat string
	Defines   []Define
}

// Define is one named term to bind before the first input line.
type Define struct {
	Name string
	Term string
}

// fileRoot mirrors the top level of the HCL file.
type fileRoot struct {
	TimeLimit hcl.Expression `hcl:"time_limit,optional"`
	LogLevel  *string        `hcl:"log_level,optional"`
	LogFormat *string        `hcl:"log_format,optional"`
	Defines   []*defineBlock `hcl:"define,block"`
}

type defineBlock struct {
	Name string `hcl:"name,label"`
	Term string `hcl:"term"`
}

// Load reads the HCL file at path. An empty path yields an empty File.
func Load(ctx context.Context, path string) (*File, error) {
	logger := ctxlog.FromContext(ctx)
	if path == "" {
		logger.Debug("No config file given.")
		return &File{}, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	file, err := Parse(src, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Config file loaded.", "path", path, "defines", len(file.Defines), "time_limit", file.TimeLimit)
	return file, nil
}

// Parse decodes HCL source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	file := &File{}
	if root.LogLevel != nil {
		file.LogLevel = *root.LogLevel
	}
	if root.LogFormat != nil {
		file.LogFormat = *root.LogFormat
	}

	limit, err := decodeTimeLimit(root.TimeLimit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	file.TimeLimit = limit

	seen := make(map[string]struct{}, len(root.Defines))
	for _, d := range root.Defines {
		if _, dup := seen[d.Name]; dup {
			return nil, fmt.Errorf("%s: duplicate define %q", filename, d.Name)
		}
		seen[d.Name] = struct{}{}
		file.Defines = append(file.Defines, Define{Name: d.Name, Term: d.Term})
	}
	return file, nil
}

// decodeTimeLimit accepts a number of seconds or a duration string.
func decodeTimeLimit(expr hcl.Expression) (time.Duration, error) {
	if expr == nil {
		return 0, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return 0, fmt.Errorf("time_limit: %w", diags)
	}
	if val.IsNull() {
		return 0, nil
	}

	var limit time.Duration
	switch val.Type() {
	case cty.Number:
		var secs float64
		if err := gocty.FromCtyValue(val, &secs); err != nil {
			return 0, fmt.Errorf("time_limit: %w", err)
		}
		if math.IsInf(secs, 0) || math.IsNaN(secs) {
			return 0, fmt.Errorf("time_limit: %v is not a finite number of seconds", secs)
		}
		limit = time.Duration(secs * float64(time.Second))
	case cty.String:
		var s string
		if err := gocty.FromCtyValue(val, &s); err != nil {
			return 0, fmt.Errorf("time_limit: %w", err)
		}
		d, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("time_limit: %w", err)
		}
		limit = d
	default:
		return 0, fmt.Errorf("time_limit: expected a number of seconds or a duration string, got %s", val.Type().FriendlyName())
	}

	if limit <= 0 {
		return 0, fmt.Errorf("time_limit: must be positive, got %v", limit)
	}
	return limit, nil
}
