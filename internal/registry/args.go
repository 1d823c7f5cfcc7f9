package registry

import (
	"fmt"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Args are the arguments of one component, as loaded from a graph
// definition. Both the HCL and YAML loaders produce cty values.
type Args map[string]cty.Value

// Has reports whether the argument is set and not null.
func (a Args) Has(name string) bool {
	v, ok := a[name]
	return ok && !v.IsNull()
}

// Names lists the argument names in sorted order.
func (a Args) Names() []string {
	names := make([]string, 0, len(a))
	for k := range a {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// String returns the argument converted to a string, or def when unset.
func (a Args) String(name, def string) (string, error) {
	if !a.Has(name) {
		return def, nil
	}
	v, err := convert.Convert(a[name], cty.String)
	if err != nil {
		return "", fmt.Errorf("argument '%s': %w", name, err)
	}
	var out string
	if err := gocty.FromCtyValue(v, &out); err != nil {
		return "", fmt.Errorf("argument '%s': %w", name, err)
	}
	return out, nil
}

// Float returns the argument converted to a number, or def when unset.
func (a Args) Float(name string, def float64) (float64, error) {
	if !a.Has(name) {
		return def, nil
	}
	v, err := convert.Convert(a[name], cty.Number)
	if err != nil {
		return 0, fmt.Errorf("argument '%s': %w", name, err)
	}
	var out float64
	if err := gocty.FromCtyValue(v, &out); err != nil {
		return 0, fmt.Errorf("argument '%s': %w", name, err)
	}
	return out, nil
}

// Floats returns the argument converted to a list of numbers. Nested lists
// are flattened in row-major order. An unset argument yields nil.
func (a Args) Floats(name string) ([]float64, error) {
	if !a.Has(name) {
		return nil, nil
	}
	var out []float64
	if err := flatten(a[name], &out); err != nil {
		return nil, fmt.Errorf("argument '%s': %w", name, err)
	}
	return out, nil
}

// Check fails on any argument not in allowed.
func (a Args) Check(allowed ...string) error {
	ok := make(map[string]struct{}, len(allowed))
	for _, n := range allowed {
		ok[n] = struct{}{}
	}
	for _, n := range a.Names() {
		if _, found := ok[n]; !found {
			return fmt.Errorf("unsupported argument '%s'", n)
		}
	}
	return nil
}

func flatten(v cty.Value, out *[]float64) error {
	if v.IsNull() || !v.IsKnown() {
		return fmt.Errorf("value must be known and not null")
	}
	ty := v.Type()
	if ty.IsListType() || ty.IsTupleType() || ty.IsSetType() {
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			if err := flatten(elem, out); err != nil {
				return err
			}
		}
		return nil
	}
	n, err := convert.Convert(v, cty.Number)
	if err != nil {
		return err
	}
	var f float64
	if err := gocty.FromCtyValue(n, &f); err != nil {
		return err
	}
	*out = append(*out, f)
	return nil
}
