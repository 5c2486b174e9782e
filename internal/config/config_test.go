package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_Full(t *testing.T) {
	t.Parallel()

	src := `
time_limit = 2
log_level  = "debug"
log_format = "json"

define "true" {
  term = "\\x y.x"
}

define "not" {
  term = "\\b.b (\\x y.y) true"
}
`
	file, err := Parse([]byte(src), "test.hcl")
	require.NoError(t, err)

	require.Equal(t, 2*time.Second, file.TimeLimit)
	require.Equal(t, "debug", file.LogLevel)
	require.Equal(t, "json", file.LogFormat)
	require.Equal(t, []Define{
		{Name: "true", Term: `\x y.x`},
		{Name: "not", Term: `\b.b (\x y.y) true`},
	}, file.Defines)
}

func TestParse_TimeLimitForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want time.Duration
	}{
		{"absent", ``, 0},
		{"integer_seconds", `time_limit = 3`, 3 * time.Second},
		{"fractional_seconds", `time_limit = 0.25`, 250 * time.Millisecond},
		{"duration_string", `time_limit = "1500ms"`, 1500 * time.Millisecond},
		{"null", `time_limit = null`, 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			file, err := Parse([]byte(tt.src), "test.hcl")
			require.NoError(t, err)
			require.Equal(t, tt.want, file.TimeLimit)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{"syntax", `time_limit = `, "failed to parse HCL file"},
		{"unknown_attribute", `workers = 3`, "failed to decode HCL file"},
		{"define_missing_term", `define "x" {}`, "failed to decode HCL file"},
		{"negative", `time_limit = -1`, "must be positive"},
		{"zero_string", `time_limit = "0s"`, "must be positive"},
		{"bad_duration", `time_limit = "soon"`, "time_limit"},
		{"wrong_type", `time_limit = true`, "expected a number of seconds or a duration string"},
		{"duplicate_define", "define \"a\" {\n term = \"x\"\n}\ndefine \"a\" {\n term = \"y\"\n}\n", `duplicate define "a"`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.src), "test.hcl")
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	file, err := Load(ctx, "")
	require.NoError(t, err)
	require.Equal(t, &File{}, file)

	_, err = Load(ctx, filepath.Join(t.TempDir(), "missing.hcl"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)

	path := filepath.Join(t.TempDir(), "lambdabot.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`time_limit = "2s"`), 0600))
	file, err = Load(ctx, path)
	require.NoError(t, err)
	require.Equal(t, 2*time.Second, file.TimeLimit)
}
