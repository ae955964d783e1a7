// Package ctype describes the shapes of C types: scalars, structs,
// unions, enums, pointers, arrays, and functions.
//
// Descriptors are produced by an external type database (a debugger, a
// DWARF dump, component metadata) and consumed read-only by the rest of
// the library; this package performs no parsing of C source syntax.
//
// A descriptor graph is immutable once built. It may be cyclic only
// through pointer indirection - a struct may point to itself - while
// by-value composition must stay finite: a struct cannot directly
// contain itself.
//
// Descriptors may carry explicit layout computed by the type database
// (per-field offsets, total struct size). Whether those override the
// recomputed C layout is decided by memview.Config.TrustExplicitLayout.
package ctype
