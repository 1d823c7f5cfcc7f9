package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestArgs(t *testing.T) {
	args := Args{
		"port":   cty.StringVal("result"),
		"value":  cty.NumberIntVal(2),
		"text":   cty.StringVal("1.5"),
		"values": cty.TupleVal([]cty.Value{cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}), cty.ListVal([]cty.Value{cty.NumberFloatVal(3.5)})}),
		"unset":  cty.NullVal(cty.String),
	}

	s, err := args.String("port", "out")
	require.NoError(t, err)
	assert.Equal(t, "result", s)

	s, err = args.String("unset", "out")
	require.NoError(t, err)
	assert.Equal(t, "out", s)

	f, err := args.Float("value", 0)
	require.NoError(t, err)
	assert.Equal(t, 2.0, f)

	f, err = args.Float("text", 0)
	require.NoError(t, err)
	assert.Equal(t, 1.5, f)

	f, err = args.Float("missing", 7)
	require.NoError(t, err)
	assert.Equal(t, 7.0, f)

	list, err := args.Floats("values")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3.5}, list)

	list, err = args.Floats("missing")
	require.NoError(t, err)
	assert.Nil(t, list)

	_, err = args.Float("port", 0)
	assert.Error(t, err)
}

func TestArgs_Check(t *testing.T) {
	args := Args{"from": cty.StringVal("in"), "typo": cty.True}
	require.NoError(t, Args{"from": cty.StringVal("in")}.Check("from", "to"))

	err := args.Check("from", "to")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "typo")
}
