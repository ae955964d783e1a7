// Package memview exposes raw memory as structured, typed objects.
//
// Given a C-style type descriptor and a byte-addressable memory backend,
// the library computes layouts, materializes lazy object views over byte
// ranges, resolves pointer indirection, and marshals values between raw
// bytes and Go representations with correct size, alignment, and
// byte-order semantics. Memory may be a static binary dump or the live
// address space of a running process or emulator.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	memview/       Root package with the MemorySpace interface and Config
//	├── ctype/     Immutable type descriptors (scalar, struct, union, ...)
//	├── layout/    Size, alignment, and field offset computation
//	├── object/    Lazy typed views over memory, value codec, dereference
//	├── typedb/    Named type registry and WIT metadata import
//	├── memspace/  Memory backends: dump files, RetroArch UDP, wazero
//	└── errors/    Structured error types for debugging
//
// # Quick Start
//
// View a struct inside a RAM dump:
//
//	space, err := memspace.Open("ram.raw", 0x80000000)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	player := ctype.NewStruct("Player",
//	    ctype.F("hp", ctype.S32),
//	    ctype.F("mp", ctype.S32),
//	)
//
//	eng, err := object.NewEngine(memview.Config{
//	    ByteOrder:    binary.BigEndian,
//	    PointerWidth: 4,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	hp, err := eng.View(space, 0x8050bc20, player).Field("hp")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	v, err := hp.Get() // one read through the backend, decoded as int64
//
// # Laziness
//
// A View never reads memory when it is constructed and caches nothing.
// Every Get, Set, or Deref touches the backend again, so views over live
// memory always observe current values. Callers wanting a snapshot should
// copy the region into a memspace.Buffer first.
//
// # Thread Safety
//
// Engines, descriptors, and layouts are immutable after construction and
// safe for concurrent use. Views are safe for concurrent use exactly when
// the underlying MemorySpace is; the engine adds no locking of its own.
package memview
