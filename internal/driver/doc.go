// Package driver steps a module tree in lock-step ticks.
//
// A tick locks every component handle, runs Input on all of them, then Fire
// on all, then Output on all, and releases the handles. Because every
// component snapshots its inputs before any component publishes, a value
// moves exactly one component downstream per tick regardless of the order
// components are visited in. Each phase fans out over a bounded worker pool.
package driver
