package integration_tests

import (
	"context"
	"testing"

	"github.com/specialistvlad/gridflow/internal/app"
	"github.com/stretchr/testify/require"
)

// TestGraph_FanOut validates that one out-port can feed any number of
// in-ports, each reader seeing the same value.
func TestGraph_FanOut(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	gridYAML := `
components:
  - kind: constant
    name: src
    out: {out: [2, 3]}
    arguments: {value: 2}
  - kind: scale
    name: a
    in: {in: [2, 3]}
    out: {out: [2, 3]}
    arguments: {factor: 1}
  - kind: scale
    name: b
    in: {in: [2, 3]}
    out: {out: [2, 3]}
    arguments: {factor: 2}
  - kind: scale
    name: c
    in: {in: [2, 3]}
    out: {out: [2, 3]}
    arguments: {factor: 3}
links:
  - connect: {from: src.out, to: a.in}
  - connect: {from: src.out, to: b.in}
  - connect: {from: src.out, to: c.in}
`
	a, logs := app.SetupAppTest(t, map[string]string{"main.yaml": gridYAML}, app.Config{
		Ticks:   2,
		Workers: 3,
		Watch:   []string{"a.out", "b.out", "c.out"},
	})

	// --- Act ---
	err := a.Run(context.Background())

	// --- Assert ---
	require.NoError(t, err)
	out := logs.String()
	require.Contains(t, out, "tick 2 a.out [2 3] sum=12")
	require.Contains(t, out, "tick 2 b.out [2 3] sum=24")
	require.Contains(t, out, "tick 2 c.out [2 3] sum=36")
}
