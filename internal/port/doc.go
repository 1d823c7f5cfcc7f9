// Package port provides fixed-shape endpoints backed by shared buffer cells.
//
// # Cells and Aliasing
//
// Every Port references exactly one cell, and a cell holds exactly one current
// array.Value. A new Port owns a private cell initialised to zeros. Entangling
// a Port with another makes it reference the other's cell, so a Write through
// either Port is immediately visible to a Read through both:
//
//	upstream out-port ──┐
//	                    ├──▶ cell { value }
//	downstream in-port ─┘
//
// This is how a component's out-port acts as the single source of truth for
// any number of downstream in-ports without copying.
//
// # Thread-Safety
//
// A cell is guarded by a read/write mutex held only for the duration of a
// single value swap or handle copy. Values are replaced, never mutated in
// place, so a Read observes the most recent completed Write and never a
// partial one. The cell reference of a Port is swapped atomically, so
// re-entangling while other goroutines read is safe, although readers may
// observe either the old or the new cell.
//
// A cell that no Port references any more is reclaimed by the garbage
// collector.
package port
