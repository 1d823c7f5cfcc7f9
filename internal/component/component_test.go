package component_test

import (
	"errors"
	"math"
	"testing"

	"github.com/specialistvlad/gridflow/internal/array"
	"github.com/specialistvlad/gridflow/internal/component"
	"github.com/specialistvlad/gridflow/internal/errs"
	"github.com/specialistvlad/gridflow/kinds/constant"
	"github.com/specialistvlad/gridflow/kinds/pipe"
	"github.com/specialistvlad/gridflow/kinds/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var dims = array.MustShape(5, 3)

func newConstant(fill float64) *component.Component {
	c := component.New("constant", &constant.Kernel{Port: "out", Value: array.Full(dims, fill)})
	c.MakeOutPort("out", dims)
	return c
}

func newPipe() *component.Component {
	c := component.New("pipe", &pipe.Kernel{From: "in", To: "out"})
	c.MakeInPort("in", dims)
	c.MakeOutPort("out", dims)
	return c
}

func newSink() *component.Component {
	c := component.New("sink", sink.Kernel{})
	c.MakeInPort("in", dims)
	return c
}

func cycle(t *testing.T, cs ...*component.Component) {
	t.Helper()
	for _, c := range cs {
		c.Input()
		require.NoError(t, c.Fire())
		require.NoError(t, c.Output())
	}
}

// sumOf yields NaN on a lookup error so the comparison fails.
func sumOf(v array.Value, err error) float64 {
	if err != nil {
		return math.NaN()
	}
	return v.Sum()
}

func TestStagingSeededWithZeros(t *testing.T) {
	c := newPipe()
	in, err := c.StagedInput("in")
	require.NoError(t, err)
	assert.Equal(t, dims, in.Shape())
	assert.Equal(t, 0.0, in.Sum())

	out, err := c.StagedOutput("out")
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Sum())

	_, err = c.StagedInput("out")
	assert.True(t, errs.IsNotFound(err))
	_, err = c.StagedOutput("in")
	assert.True(t, errs.IsNotFound(err))
}

func TestRemovePortDropsStaging(t *testing.T) {
	c := newPipe()
	require.NoError(t, c.RemoveInPort("in"))
	require.NoError(t, c.RemoveOutPort("out"))

	_, err := c.StagedInput("in")
	assert.True(t, errs.IsNotFound(err))
	_, err = c.StagedOutput("out")
	assert.True(t, errs.IsNotFound(err))
	assert.True(t, errs.IsNotFound(c.RemoveInPort("in")))
}

func TestOutput_Idempotent(t *testing.T) {
	c := newPipe()
	in, _ := c.InPort("in")
	require.NoError(t, in.Write(array.Full(dims, 3)))
	c.Input()
	require.NoError(t, c.Fire())
	staged, err := c.StagedOutput("out")
	require.NoError(t, err)

	out, _ := c.OutPort("out")
	require.NoError(t, c.Output())
	first := out.Read()
	require.NoError(t, c.Output())

	assert.True(t, first.Same(out.Read()), "second Output republishes the same value")
	assert.True(t, staged.Same(out.Read()))
	again, err := c.StagedOutput("out")
	require.NoError(t, err)
	assert.True(t, staged.Same(again), "Output leaves staging untouched")
	assert.Equal(t, 45.0, out.Read().Sum())
}

func TestPipe(t *testing.T) {
	c := newPipe()
	in, _ := c.InPort("in")
	require.NoError(t, in.Write(array.Full(dims, 1)))

	c.Input()
	assert.Equal(t, 15.0, sumOf(c.StagedInput("in")))
	require.NoError(t, c.Fire())
	assert.Equal(t, 15.0, sumOf(c.StagedOutput("out")))

	out, _ := c.OutPort("out")
	assert.Equal(t, 0.0, out.Read().Sum(), "out port changes only on Output")
	require.NoError(t, c.Output())
	assert.Equal(t, 15.0, out.Read().Sum())
}

func TestConstant(t *testing.T) {
	c := newConstant(1)
	out, _ := c.OutPort("out")
	for i := 0; i < 3; i++ {
		cycle(t, c)
		assert.Equal(t, 15.0, out.Read().Sum())
	}
}

func TestChain_OneTickLatency(t *testing.T) {
	src := newConstant(1)
	mid := newPipe()
	dst := newSink()
	require.NoError(t, mid.Connect("in", src, "out"))
	require.NoError(t, dst.Connect("in", mid, "out"))

	midIn, _ := mid.InPort("in")
	dstIn, _ := dst.InPort("in")

	// all inputs, then all fires, then all outputs
	tick := func() {
		for _, c := range []*component.Component{src, mid, dst} {
			c.Input()
		}
		for _, c := range []*component.Component{src, mid, dst} {
			require.NoError(t, c.Fire())
		}
		for _, c := range []*component.Component{src, mid, dst} {
			require.NoError(t, c.Output())
		}
	}

	// Each stage sees its upstream one tick late: staged inputs are
	// snapshots taken before anyone outputs.
	tick()
	assert.Equal(t, 0.0, sumOf(mid.StagedInput("in")))
	assert.Equal(t, 0.0, sumOf(dst.StagedInput("in")))
	assert.Equal(t, 15.0, midIn.Read().Sum())
	assert.Equal(t, 0.0, dstIn.Read().Sum())

	tick()
	assert.Equal(t, 15.0, sumOf(mid.StagedInput("in")))
	assert.Equal(t, 0.0, sumOf(dst.StagedInput("in")))
	assert.Equal(t, 15.0, dstIn.Read().Sum())

	tick()
	assert.Equal(t, 15.0, sumOf(mid.StagedInput("in")))
	assert.Equal(t, 15.0, sumOf(dst.StagedInput("in")))
	assert.Equal(t, 15.0, dstIn.Read().Sum())
}

func TestFire_ErrorKeepsPreviousOutputs(t *testing.T) {
	boom := errors.New("boom")
	fail := false
	c := component.New("flaky", component.KernelFunc(func(in component.Staged) (component.Staged, error) {
		if fail {
			return nil, boom
		}
		return component.Staged{"out": array.Full(dims, 2)}, nil
	}))
	c.MakeOutPort("out", dims)

	require.NoError(t, c.Fire())
	fail = true
	err := c.Fire()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "flaky")
	assert.Equal(t, 30.0, sumOf(c.StagedOutput("out")))
}

func TestFire_MissingStagedInput(t *testing.T) {
	c := component.New("pipe", &pipe.Kernel{From: "missing", To: "out"})
	c.MakeOutPort("out", dims)
	err := c.Fire()
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestFire_KernelSeesACopy(t *testing.T) {
	c := component.New("mutating", component.KernelFunc(func(in component.Staged) (component.Staged, error) {
		delete(in, "in")
		return nil, nil
	}))
	c.MakeInPort("in", dims)
	c.Input()
	require.NoError(t, c.Fire())
	_, err := c.StagedInput("in")
	assert.NoError(t, err)
}

func TestOutput_IncompleteWritesNothing(t *testing.T) {
	c := component.New("partial", component.KernelFunc(func(component.Staged) (component.Staged, error) {
		return component.Staged{"a": array.Full(dims, 1)}, nil
	}))
	c.MakeOutPort("a", dims)
	c.MakeOutPort("b", dims)
	require.NoError(t, c.Fire())

	err := c.Output()
	require.Error(t, err)
	assert.True(t, errs.IsIncompleteResult(err))
	var ire *errs.IncompleteResultError
	require.True(t, errors.As(err, &ire))
	assert.Equal(t, "b", ire.Port)

	a, _ := c.OutPort("a")
	assert.Equal(t, 0.0, a.Read().Sum())
}

func TestOutput_ShapeMismatch(t *testing.T) {
	c := component.New("wrong", component.KernelFunc(func(component.Staged) (component.Staged, error) {
		return component.Staged{"out": array.Full(array.MustShape(2), 1)}, nil
	}))
	c.MakeOutPort("out", dims)
	require.NoError(t, c.Fire())

	err := c.Output()
	require.Error(t, err)
	assert.True(t, errs.IsShapeMismatch(err))
}

func TestFire_NilKernelStagesNothing(t *testing.T) {
	c := component.New("empty", nil)
	c.MakeOutPort("out", dims)
	require.NoError(t, c.Output())
	require.NoError(t, c.Fire())
	assert.True(t, errs.IsIncompleteResult(c.Output()))
}
