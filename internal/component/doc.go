// Package component implements the executable unit of a graph.
//
// A Component is a unit with two private staging maps and a Kernel. One
// execution cycle is three calls made by whoever drives the graph:
//
//	Input()   snapshot every in-port into the staged inputs
//	Fire()    run the kernel on the staged inputs, staging outputs
//	Output()  publish the staged outputs into the out-ports
//
// Only Input reads ports and only Output writes them, so Fire is pure with
// respect to the port graph. Calls out of order are allowed and well defined:
// Output before any Fire publishes the zeros seeded at port creation.
//
// A Component is not safe for concurrent use on its own. Drivers serialize
// access through the module handle that owns it.
package component
