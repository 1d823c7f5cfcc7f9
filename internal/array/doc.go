// Package array is the boundary to the numeric array library. Ports and
// components only ever construct zero values and compare shapes; everything
// else about a Value is opaque to them.
package array
