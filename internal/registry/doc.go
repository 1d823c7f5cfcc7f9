// Package registry maps the kind names used in graph definitions to the Go
// factories that build component kernels.
//
// Kinds are compiled in: each kind package exposes a Module whose Register
// method adds its factory during application startup. Registering the same
// kind twice is a programming error and panics.
package registry
