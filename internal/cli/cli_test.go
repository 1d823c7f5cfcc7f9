package cli

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/specialistvlad/gridflow/internal/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	var out bytes.Buffer
	cfg, exit, err := Parse([]string{"graph.hcl"}, &out)
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, []string{"graph.hcl"}, cfg.GraphPaths)
	assert.Equal(t, uint64(1), cfg.Ticks)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.Workers)
	assert.Equal(t, 0, cfg.HealthcheckPort)
	assert.Equal(t, monitor.DefaultEvent, cfg.MonitorEvent)
	assert.Empty(t, cfg.Watch)
	assert.Empty(t, out.String())
}

func TestParse_AllFlags(t *testing.T) {
	args := []string{
		"-g", "a.hcl",
		"--graph", "b.yaml",
		"--ticks", "0",
		"--watch", "dst.in",
		"-w", "inner.p.out",
		"--log-format", "TEXT",
		"--log-level", "Debug",
		"--healthcheck-port", "8080",
		"--workers", "3",
		"--interval", "250ms",
		"--monitor-url", "http://localhost:3000",
		"--monitor-event", "ticks",
		"c.hcl",
	}
	cfg, exit, err := Parse(args, &bytes.Buffer{})
	require.NoError(t, err)
	require.False(t, exit)

	assert.Equal(t, []string{"a.hcl", "b.yaml", "c.hcl"}, cfg.GraphPaths)
	assert.Equal(t, uint64(0), cfg.Ticks)
	assert.Equal(t, []string{"dst.in", "inner.p.out"}, cfg.Watch)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.HealthcheckPort)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 250*time.Millisecond, cfg.Interval)
	assert.Equal(t, "http://localhost:3000", cfg.MonitorURL)
	assert.Equal(t, "ticks", cfg.MonitorEvent)
}

func TestParse_HelpAndUsage(t *testing.T) {
	for _, args := range [][]string{{"-h"}, {"--help"}, {}} {
		t.Run(fmt.Sprint(args), func(t *testing.T) {
			var out bytes.Buffer
			cfg, exit, err := Parse(args, &out)
			require.NoError(t, err)
			assert.True(t, exit)
			assert.Nil(t, cfg)
			assert.Contains(t, out.String(), "Usage:")
			assert.Contains(t, out.String(), "GRAPH_PATH")
		})
	}
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{"unknown flag", []string{"--nope", "g.hcl"}, "unknown flag: --nope"},
		{"bad format", []string{"--log-format", "xml", "g.hcl"}, "invalid log-format"},
		{"bad level", []string{"--log-level", "loud", "g.hcl"}, "invalid log-level"},
		{"bad ticks", []string{"--ticks=-1", "g.hcl"}, "invalid argument"},
		{"zero workers", []string{"--workers", "0", "g.hcl"}, "workers must be at least 1"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, exit, err := Parse(tc.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.False(t, exit)
			assert.Nil(t, cfg)

			exitErr, ok := AsExitError(err)
			require.True(t, ok)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}
