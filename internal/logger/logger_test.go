package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetLogger() {
	Init(Options{})
}

func TestInit_Levels(t *testing.T) {
	defer resetLogger()
	tests := []struct {
		name    string
		opts    Options
		logged  []string
		dropped []string
	}{
		{"default", Options{}, []string{"info", "warn", "error"},
			[]string{"debug"}},
		{"debug", Options{Debug: true}, []string{"debug", "info"}, nil},
		{"quiet", Options{Quiet: true}, []string{"error"},
			[]string{"debug", "info", "warn"}},
		{"warn level", Options{Level: slog.LevelWarn},
			[]string{"warn", "error"}, []string{"info"}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			test.opts.Output = buf
			Init(test.opts)
			Debug("msg-debug")
			Info("msg-info")
			Warn("msg-warn")
			Error("msg-error")
			for _, level := range test.logged {
				assert.Contains(t, buf.String(), "msg-"+level)
			}
			for _, level := range test.dropped {
				assert.NotContains(t, buf.String(), "msg-"+level)
			}
		})
	}
}

func TestInit_JSON(t *testing.T) {
	defer resetLogger()
	buf := &bytes.Buffer{}
	Init(Options{JSON: true, Output: buf})
	With("source", "a.txt").Info("processed", "accepted", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "processed", record["msg"])
	assert.Equal(t, "a.txt", record["source"])
	assert.Equal(t, float64(3), record["accepted"])
}

func TestInit_SetsSlogDefault(t *testing.T) {
	defer resetLogger()
	buf := &bytes.Buffer{}
	l := Init(Options{Output: buf})
	assert.Same(t, l, Logger())
	slog.Info("through the default")
	assert.Contains(t, buf.String(), "through the default")
}

func TestParseLevel(t *testing.T) {
	for input, expected := range map[string]slog.Level{
		"":        slog.LevelInfo,
		"info":    slog.LevelInfo,
		"DEBUG":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	} {
		level, err := ParseLevel(input)
		assert.NoError(t, err, input)
		assert.Equal(t, expected, level, input)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}
