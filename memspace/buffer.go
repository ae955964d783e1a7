package memspace

import (
	"github.com/wippyai/memview/errors"
)

// Buffer is a MemorySpace over a single contiguous region held in
// memory, typically the contents of a RAM snapshot. Addresses are
// absolute; the region starts at a configured base address.
type Buffer struct {
	base uint64
	data []byte
}

// NewBuffer wraps data as a region starting at base. The slice is used
// directly, not copied. The region must not wrap the address space:
// base+len(data) has to fit in a uint64.
func NewBuffer(base uint64, data []byte) *Buffer {
	return &Buffer{base: base, data: data}
}

// Base returns the first mapped address.
func (b *Buffer) Base() uint64 {
	return b.base
}

// End returns the address just past the last mapped byte.
func (b *Buffer) End() uint64 {
	return b.base + uint64(len(b.data))
}

// Contains reports whether addr falls inside the region.
func (b *Buffer) Contains(addr uint64) bool {
	return addr >= b.base && addr-b.base < uint64(len(b.data))
}

// spans reports whether [addr, addr+length) lies inside the region.
// Compared against the remaining room rather than addr+length, which
// wraps for addresses near the top of the address space.
func (b *Buffer) spans(addr uint64, length uint32) bool {
	if addr < b.base {
		return false
	}
	off := addr - b.base
	if off > uint64(len(b.data)) {
		return false
	}
	return uint64(length) <= uint64(len(b.data))-off
}

// Read returns a copy of length bytes at addr.
func (b *Buffer) Read(addr uint64, length uint32) ([]byte, error) {
	if !b.spans(addr, length) {
		return nil, errors.New(errors.PhaseBackend, errors.KindOutOfBounds).
			Addr(addr).
			Detail("range +%d outside region [0x%x, 0x%x)", length, b.base, b.End()).
			Build()
	}
	off := addr - b.base
	out := make([]byte, length)
	copy(out, b.data[off:])
	return out, nil
}

// Write copies data into the region at addr.
func (b *Buffer) Write(addr uint64, data []byte) error {
	if !b.spans(addr, uint32(len(data))) {
		return errors.New(errors.PhaseBackend, errors.KindOutOfBounds).
			Addr(addr).
			Detail("range +%d outside region [0x%x, 0x%x)", len(data), b.base, b.End()).
			Build()
	}
	copy(b.data[addr-b.base:], data)
	return nil
}
