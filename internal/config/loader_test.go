package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/gridflow/internal/ctxlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLoader returns one component per file, named after the file.
type stubLoader struct {
	kind  string
	calls [][]string
}

func (s *stubLoader) Load(_ context.Context, paths ...string) (*Model, error) {
	s.calls = append(s.calls, paths)
	m := NewModel()
	for _, p := range paths {
		name := filepath.Base(p)
		name = name[:len(name)-len(filepath.Ext(name))]
		m.Root.Components = append(m.Root.Components, &Component{Kind: s.kind, Name: name, Source: Source{File: p}})
	}
	return m, nil
}

func testCtx() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestMultiLoader(t *testing.T) {
	dir := t.TempDir()
	for _, f := range []string{"a.hcl", "b.yaml", "c.yml", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f), nil, 0o644))
	}

	hclLoader := &stubLoader{kind: "from-hcl"}
	yamlLoader := &stubLoader{kind: "from-yaml"}
	ml := NewMultiLoader()
	ml.Register(hclLoader, ".hcl")
	ml.Register(yamlLoader, ".yaml", ".yml")
	assert.Equal(t, []string{".hcl", ".yaml", ".yml"}, ml.Extensions())

	m, err := ml.Load(testCtx(), dir, filepath.Join(dir, "a.hcl"))
	require.NoError(t, err)
	require.Len(t, m.Root.Components, 3)
	assert.Len(t, hclLoader.calls, 1, "the same file listed twice is loaded once")
	assert.Equal(t, []string{filepath.Join(dir, "a.hcl")}, hclLoader.calls[0])
	assert.Len(t, yamlLoader.calls, 2)
}

func TestMultiLoader_Errors(t *testing.T) {
	dir := t.TempDir()
	ml := NewMultiLoader()
	ml.Register(&stubLoader{kind: "k"}, ".hcl")

	_, err := ml.Load(testCtx(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no graph files")

	_, err = ml.Load(testCtx(), filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)

	sub := filepath.Join(dir, "x")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "dup.hcl"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dup.hcl"), nil, 0o644))
	_, err = ml.Load(testCtx(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name 'dup'")
}
