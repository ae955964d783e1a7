package memview

import "encoding/binary"

// MemorySpace is a byte-addressable region with flat linear addressing.
//
// Implementations decide what an address means: an offset into a dump
// file, a guest pointer inside wasm linear memory, or a physical address
// on an emulated console. Read and Write must either fully succeed or
// return an error; partial transfers are not part of the contract.
//
// The engine borrows a MemorySpace by reference and never caches bytes
// between calls. Concurrent use of views sharing a MemorySpace is safe
// exactly when the implementation is.
type MemorySpace interface {
	Read(addr uint64, length uint32) ([]byte, error)
	Write(addr uint64, data []byte) error
}

// Saver is implemented by backends that can persist modified memory back
// to their source, such as file-backed dumps.
type Saver interface {
	Save() error
}

// Config describes the target the raw bytes came from.
type Config struct {
	// ByteOrder of scalar values in memory. Defaults to little-endian.
	ByteOrder binary.ByteOrder

	// PointerWidth is the size of a pointer in bytes, 4 or 8.
	// Defaults to 8.
	PointerWidth uint32

	// TrustExplicitLayout makes explicit struct sizes and field offsets
	// carried by descriptors take precedence over recomputed C layout.
	// Type databases that already ran layout (debuggers, DWARF dumps)
	// should leave this on. Defaults to true via DefaultConfig.
	TrustExplicitLayout bool
}

// DefaultConfig returns the configuration for a 64-bit little-endian
// target with explicit layout overrides honored.
func DefaultConfig() Config {
	return Config{
		ByteOrder:           binary.LittleEndian,
		PointerWidth:        8,
		TrustExplicitLayout: true,
	}
}

// GameCube returns the configuration for GC/Wii targets: big-endian,
// 32-bit pointers.
func GameCube() Config {
	return Config{
		ByteOrder:           binary.BigEndian,
		PointerWidth:        4,
		TrustExplicitLayout: true,
	}
}

// Normalize fills zero-valued fields with defaults and reports whether
// the pointer width is usable.
func (c Config) Normalize() (Config, bool) {
	if c.ByteOrder == nil {
		c.ByteOrder = binary.LittleEndian
	}
	if c.PointerWidth == 0 {
		c.PointerWidth = 8
	}
	return c, c.PointerWidth == 4 || c.PointerWidth == 8
}
