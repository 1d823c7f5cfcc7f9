package address

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  Address
	}{
		{name: "single segment", raw: "out", expected: New("out")},
		{name: "nested path", raw: "inner.c1.in", expected: New("inner", "c1", "in")},
		{name: "dashes and underscores", raw: "stage_1.my-comp", expected: New("stage_1", "my-comp")},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - empty segment", raw: "a..b", expectErr: true},
		{name: "error - trailing dot", raw: "a.", expectErr: true},
		{name: "error - leading digit", raw: "a.1b", expectErr: true},
		{name: "error - index syntax", raw: "a.b[0]", expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := Parse(tc.raw)
			if tc.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(addr), "got %v", addr)
			assert.Equal(t, tc.raw, addr.String())
		})
	}
}

func TestNavigation(t *testing.T) {
	addr := New("inner", "c1", "out")
	assert.Equal(t, 3, addr.Len())
	assert.Equal(t, "out", addr.Last())
	assert.Equal(t, "inner.c1", addr.Parent().String())
	assert.True(t, addr.Parent().Parent().Parent().IsZero())
	assert.Equal(t, "", Address{}.Last())
	assert.True(t, Address{}.Parent().IsZero())

	root := New("inner")
	assert.Equal(t, "inner.c2", root.Child("c2").String())
	assert.Equal(t, "inner", root.String(), "Child must not modify the receiver")
	assert.Equal(t, "inner.c1.out", root.Join(New("c1", "out")).String())
}

func TestEqual(t *testing.T) {
	assert.True(t, New("a", "b").Equal(New("a", "b")))
	assert.False(t, New("a", "b").Equal(New("a")))
	assert.False(t, New("a", "b").Equal(New("a", "c")))
	assert.True(t, Address{}.Equal(New()))
}
