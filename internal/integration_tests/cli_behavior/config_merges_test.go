package integration_tests

import (
	"context"
	"testing"

	"github.com/specialistvlad/gridflow/internal/app"
	"github.com/stretchr/testify/require"
)

// TestCLI_MergesFormats_FromDirectoryPath validates that HCL and YAML files
// found under one directory are merged into a single graph, with links in
// one file addressing components declared in another.
func TestCLI_MergesFormats_FromDirectoryPath(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	sourceHCL := `
component "constant" "src" {
  out "out" { shape = [4] }
  arguments {
    values = [1, 2, 3, 4]
  }
}
`
	sinkYAML := `
components:
  - kind: sink
    name: dst
    in:
      in: [4]
links:
  - connect: {from: src.out, to: dst.in}
`
	files := map[string]string{
		"grids/source.hcl": sourceHCL,
		"grids/sink.yml":   sinkYAML,
		"README.md":        "not a graph",
	}
	a, logs := app.SetupAppTest(t, files, app.Config{Ticks: 2, Watch: []string{"dst.in"}})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err, "app.Run() returned an unexpected error")
	require.Len(t, a.Model().Root.Components, 2)
	require.Contains(t, logs.String(), "tick 2 dst.in [4] sum=10")
}
