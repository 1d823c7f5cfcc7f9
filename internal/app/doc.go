// Package app contains the core application logic. It wires the graph
// loaders, the kind registry, the builder and the lock-step driver into one
// lifecycle, decoupled from any specific entrypoint like a CLI or server.
package app
