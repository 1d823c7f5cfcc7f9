// Package config defines the format-agnostic model of a graph definition and
// the Loader interface that format-specific packages implement.
//
// The Model is the single input of the builder. Concrete loaders for HCL and
// YAML live in separate packages and only have to produce a Model; shared
// checks such as duplicate names and address syntax run in Validate.
package config
