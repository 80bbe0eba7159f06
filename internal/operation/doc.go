// Package operation provides the operation registry for abacus.
//
// The registry maps an operation name to a pure numeric handler. Every
// handler is total over its numeric domain: out-of-domain math (divide by
// zero, square root of a negative, factorial of a non-integer, an empty
// average) is reported as an error wrapping ErrDomain, never as a panic and
// never as a silent NaN.
//
// DISPATCH:
//
// Operations are a closed set of Kind values. Each Kind is bound to its
// handler, arity and display hint in a single table (see registry.go), so
// adding an operation is one table entry plus its handler. There is no
// reflection and no dynamic method lookup.
//
// The registry is built once by Default() and is read-only afterwards; it is
// safe for concurrent use.
package operation
