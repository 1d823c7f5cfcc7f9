// Package address parses and formats the dotted paths that name things
// inside a module tree.
//
// An address is a list of segments separated by dots. Inside a module,
// "inner.c1" names component c1 of submodule inner, and "inner.c1.out" names
// a port of that component. Which segment is a port is decided by the
// caller; the address itself is only a path.
package address
