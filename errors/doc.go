// Package errors provides structured error types for the memview library.
//
// Errors are categorized by Phase (where the error occurred) and Kind
// (error category). The Error type includes rich context: field path, C
// type name, the faulting address, and a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseAccess, errors.KindNoSuchField).
//		Path("player", "hp").
//		CType("struct Player").
//		Detail("no such field").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.NoSuchField(path, "struct Player", "hp")
//	err := errors.OutOfBounds(errors.PhaseDecode, addr, 4, cause)
//
// All errors implement the standard error interface and support
// errors.Is/As. Is matches on (Phase, Kind), so sentinel comparisons like
//
//	errors.Is(err, errors.NullDereference(nil))
//
// work without inspecting message text.
package errors
