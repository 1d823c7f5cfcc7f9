// Package module composes components and nested modules into a tree.
//
// A Module is itself a unit: its own in- and out-ports form the boundary
// that parents connect to, and AliasInPort/AliasOutPort join that boundary
// with the ports of its children. Every child is held behind a Handle, a
// mutex-guarded reference that callers lock for the duration of whatever
// they do with the child. Two handles never share a lock, so different
// children can be driven in parallel.
//
// Stepping a module is not recursive. A driver collects Leaves and runs the
// Input/Fire/Output cycle on each component itself.
package module
