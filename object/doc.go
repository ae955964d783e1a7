// Package object materializes lazy typed views over raw memory.
//
// A View binds a MemorySpace, a base address, and a type descriptor. It
// reads nothing when constructed and caches nothing afterwards: every
// Get, Set, or Deref recomputes layout and touches the backend exactly
// once, so views over live memory always observe current values.
//
// Navigation is free of memory traffic. Field and Index return child
// views at computed addresses; only scalar access at the leaves performs
// reads or writes. Pointers never auto-dereference: Get on a pointer
// view yields its integer value, and Deref is the explicit step that
// follows it into the same MemorySpace, failing on a null value.
//
//	world := eng.View(space, 0x8050bc20, worldType)
//	g, err := world.Field("ambient")     // no memory read yet
//	if err != nil { ... }
//	val, err := g.Get()                  // one backend read, decoded
//
// Errors carry the field path from the root view for diagnostics.
package object
