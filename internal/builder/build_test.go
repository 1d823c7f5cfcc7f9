package builder

import (
	"testing"

	"github.com/specialistvlad/gridflow/internal/address"
	"github.com/specialistvlad/gridflow/internal/array"
	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/config"
	"github.com/specialistvlad/gridflow/internal/errs"
	hclloader "github.com/specialistvlad/gridflow/internal/hcl"
	"github.com/specialistvlad/gridflow/internal/module"
	"github.com/specialistvlad/gridflow/internal/registry"
	"github.com/specialistvlad/gridflow/internal/testutil"
	"github.com/specialistvlad/gridflow/kinds/constant"
	"github.com/specialistvlad/gridflow/kinds/pipe"
	"github.com/specialistvlad/gridflow/kinds/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *registry.Registry {
	r := registry.New()
	for _, m := range []registry.Module{&constant.Module{}, &pipe.Module{}, &sink.Module{}} {
		m.Register(r)
	}
	return r
}

func buildHCL(t *testing.T, src string) (*module.Module, error) {
	t.Helper()
	ctx, _ := testutil.Context(t)
	model, err := hclloader.NewLoader().Load(ctx, testutil.WriteFile(t, "main.hcl", src))
	require.NoError(t, err)
	require.NoError(t, model.Validate())
	return New(newRegistry()).Build(ctx, model)
}

func tick(t *testing.T, root *module.Module) {
	t.Helper()
	leaves := root.Leaves()
	for _, l := range leaves {
		l.Handle.Lock().Input()
		l.Handle.Unlock()
	}
	for _, l := range leaves {
		require.NoError(t, l.Handle.Do(func(c *component.Component) error { return c.Fire() }))
	}
	for _, l := range leaves {
		require.NoError(t, l.Handle.Do(func(c *component.Component) error { return c.Output() }))
	}
}

func readSum(t *testing.T, root *module.Module, addr string) float64 {
	t.Helper()
	a, err := address.Parse(addr)
	require.NoError(t, err)
	p, _, err := root.Port(a)
	require.NoError(t, err)
	return p.Read().Sum()
}

func TestBuild_Chain(t *testing.T) {
	root, err := buildHCL(t, testutil.ChainHCL)
	require.NoError(t, err)

	assert.Equal(t, []string{"dst", "src"}, root.ComponentNames())
	assert.Equal(t, []string{"inner"}, root.SubmoduleNames())

	src, _, err := root.Port(address.New("src", "out"))
	require.NoError(t, err)
	innerIn, _, err := root.Port(address.New("inner", "in"))
	require.NoError(t, err)
	pIn, _, err := root.Port(address.New("inner", "p", "in"))
	require.NoError(t, err)
	assert.True(t, innerIn.SharesCellWith(src))
	assert.True(t, pIn.SharesCellWith(src), "alias_in must see the upstream cell")

	pOut, _, err := root.Port(address.New("inner", "p", "out"))
	require.NoError(t, err)
	dstIn, _, err := root.Port(address.New("dst", "in"))
	require.NoError(t, err)
	assert.True(t, dstIn.SharesCellWith(pOut), "connect to a module out-port must reach the child cell")

	tick(t, root)
	assert.Equal(t, 15.0, readSum(t, root, "inner.p.in"))
	assert.Equal(t, 0.0, readSum(t, root, "dst.in"))
	tick(t, root)
	assert.Equal(t, 15.0, readSum(t, root, "dst.in"))
}

func TestBuild_LinkOrderIndependentOfDeclaration(t *testing.T) {
	// links declared in the "wrong" order still resolve
	src := `
connect {
  from = "outer.out"
  to   = "dst.in"
}
connect {
  from = "src.out"
  to   = "outer.in"
}

component "constant" "src" {
  out "out" { shape = [2] }
  arguments {
    value = 3
  }
}
component "sink" "dst" {
  in "in" { shape = [2] }
}

module "outer" {
  in "in" { shape = [2] }
  out "out" { shape = [2] }

  alias_out {
    from = "mid.out"
    to   = "out"
  }
  alias_in {
    from = "in"
    to   = "mid.in"
  }

  module "mid" {
    in "in" { shape = [2] }
    out "out" { shape = [2] }

    alias_in {
      from = "in"
      to   = "p.in"
    }
    alias_out {
      from = "p.out"
      to   = "out"
    }

    component "pipe" "p" {
      in "in" { shape = [2] }
      out "out" { shape = [2] }
    }
  }
}
`
	root, err := buildHCL(t, src)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		tick(t, root)
	}
	assert.Equal(t, 6.0, readSum(t, root, "dst.in"))
	assert.Equal(t, 6.0, readSum(t, root, "outer.mid.p.in"))
}

func TestBuild_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		src     string
		check   func(error) bool
		wantErr string
	}{
		{
			name:    "unknown kind",
			src:     `component "mystery" "a" {}`,
			check:   errs.IsNotFound,
			wantErr: `kind "mystery"`,
		},
		{
			name: "shape mismatch",
			src: `
component "constant" "a" {
  out "out" { shape = [5, 3] }
}
component "sink" "b" {
  in "in" { shape = [3, 5] }
}
connect {
  from = "a.out"
  to   = "b.in"
}
`,
			check:   errs.IsShapeMismatch,
			wantErr: "connect a.out -> b.in",
		},
		{
			name: "missing port",
			src: `
component "sink" "b" {
  in "in" { shape = [3] }
}
connect {
  from = "a.out"
  to   = "b.in"
}
`,
			check:   errs.IsNotFound,
			wantErr: "a",
		},
		{
			name: "wrong direction",
			src: `
component "sink" "b" {
  in "in" { shape = [3] }
}
component "sink" "c" {
  in "in" { shape = [3] }
}
connect {
  from = "b.in"
  to   = "c.in"
}
`,
			check:   errs.IsNotFound,
			wantErr: `out port "in"`,
		},
		{
			name: "bad kernel arguments",
			src: `
component "constant" "a" {
  out "out" { shape = [3] }
  arguments {
    colour = "red"
  }
}
`,
			check:   func(error) bool { return true },
			wantErr: "unsupported argument 'colour'",
		},
		{
			name: "pipe port names not declared",
			src: `
component "pipe" "p" {
  in "in" { shape = [3] }
  out "result" { shape = [3] }
}
`,
			check:   func(error) bool { return true },
			wantErr: "component 'p': kind 'pipe': component 'p': pipe needs an out port named 'out'",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := buildHCL(t, tc.src)
			require.Error(t, err)
			assert.True(t, tc.check(err), "unexpected error class: %v", err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestBuild_NilModel(t *testing.T) {
	ctx, _ := testutil.Context(t)
	_, err := New(newRegistry()).Build(ctx, &config.Model{})
	assert.Error(t, err)
}

func TestBuild_LogsUnfedPorts(t *testing.T) {
	ctx, logs := testutil.Context(t)
	model := config.NewModel()
	model.Root.Components = []*config.Component{
		{Kind: "sink", Name: "lonely", InPorts: []*config.Port{{Name: "in", Shape: []int{2}}}},
	}
	root, err := New(newRegistry()).Build(ctx, model)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "port=lonely.in")

	h, err := root.Component("lonely")
	require.NoError(t, err)
	c := h.Lock()
	defer h.Unlock()
	p, err := c.InPort("in")
	require.NoError(t, err)
	assert.Equal(t, array.MustShape(2), p.Shape())
}
