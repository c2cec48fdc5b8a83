package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/stock-tracker/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "info", input: "info", want: slog.LevelInfo},
		{name: "warn", input: "warn", want: slog.LevelWarn},
		{name: "warning alias", input: "warning", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "mixed case", input: " DEBUG ", want: slog.LevelDebug},
		{name: "empty defaults to info", input: "", want: slog.LevelInfo},
		{name: "unknown defaults to info", input: "trace", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	require.NotNil(t, logger.New("info", "text"))
}

func TestNewWithWriter_Formats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		wantHas []string
	}{
		{
			name:    "text",
			format:  "text",
			wantHas: []string{"level=INFO", "msg=imported", "service=stock-tracker", "rows=3"},
		},
		{
			name:    "json",
			format:  "json",
			wantHas: []string{`"level":"INFO"`, `"msg":"imported"`, `"service":"stock-tracker"`, `"rows":3`},
		},
		{
			name:    "unknown format falls back to text",
			format:  "yaml",
			wantHas: []string{"level=INFO", "msg=imported"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			l := logger.NewWithWriter(&buf, "info", tt.format)
			l.Info("imported", "rows", 3)

			for _, s := range tt.wantHas {
				assert.Contains(t, buf.String(), s)
			}
		})
	}
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		level      string
		logFunc    func(*slog.Logger)
		wantOutput bool
	}{
		{
			name:       "debug visible at debug",
			level:      "debug",
			logFunc:    func(l *slog.Logger) { l.Debug("lookup") },
			wantOutput: true,
		},
		{
			name:       "debug suppressed at info",
			level:      "info",
			logFunc:    func(l *slog.Logger) { l.Debug("lookup") },
			wantOutput: false,
		},
		{
			name:       "warn visible at warn",
			level:      "warn",
			logFunc:    func(l *slog.Logger) { l.Warn("notification failed") },
			wantOutput: true,
		},
		{
			name:       "info suppressed at error",
			level:      "error",
			logFunc:    func(l *slog.Logger) { l.Info("merged") },
			wantOutput: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			tt.logFunc(logger.NewWithWriter(&buf, tt.level, "text"))

			if tt.wantOutput {
				assert.NotEmpty(t, buf.String())
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestDiscard(t *testing.T) {
	t.Parallel()

	l := logger.Discard()
	require.NotNil(t, l)
	l.Error("dropped")
}
