package app

import (
	"os"
	"testing"

	"github.com/specialistvlad/gridflow/internal/registry"
	"github.com/specialistvlad/gridflow/internal/testutil"
	"github.com/stretchr/testify/require"
)

// SetupAppTest writes files into a temp dir, points cfg at it and returns a
// debug-logging App whose output lands in the returned buffer.
func SetupAppTest(t *testing.T, files map[string]string, cfg Config, kinds ...registry.Module) (*App, *testutil.SafeBuffer) {
	t.Helper()

	dir := testutil.WriteFiles(t, files)
	cfg.GraphPaths = []string{dir}
	cfg.LogLevel = "debug"
	if cfg.Workers == 0 {
		cfg.Workers = 2
	}

	logBuffer := &testutil.SafeBuffer{}
	testApp, err := NewApp(logBuffer, &cfg, DefaultLoader(), kinds...)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("GRIDFLOW_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return testApp, logBuffer
}
