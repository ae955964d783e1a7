package memspace

import (
	"fmt"
	"math"

	"github.com/tetratelabs/wazero/api"

	"github.com/wippyai/memview/errors"
)

// WasmSpace is a MemorySpace over the linear memory of a live wazero
// guest. Addresses are guest offsets, so views built on it describe
// structures inside a running wasm module.
type WasmSpace struct {
	mem api.Memory
}

// NewWasmSpace wraps a wazero memory instance.
func NewWasmSpace(mem api.Memory) *WasmSpace {
	return &WasmSpace{mem: mem}
}

// Size returns the current byte size of the guest memory.
func (w *WasmSpace) Size() uint32 {
	return w.mem.Size()
}

// Read returns a copy of length bytes at addr. Linear memory is 32-bit
// addressed; anything above that range is out of bounds by definition.
func (w *WasmSpace) Read(addr uint64, length uint32) ([]byte, error) {
	if addr > math.MaxUint32 {
		return nil, w.oob(addr, length)
	}
	data, ok := w.mem.Read(uint32(addr), length)
	if !ok {
		return nil, w.oob(addr, length)
	}
	// wazero hands back a window into the guest's memory; copy so later
	// guest writes cannot mutate what the caller already read.
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}

// Write stores data into guest memory at addr.
func (w *WasmSpace) Write(addr uint64, data []byte) error {
	if addr > math.MaxUint32 {
		return w.oob(addr, uint32(len(data)))
	}
	if !w.mem.Write(uint32(addr), data) {
		return w.oob(addr, uint32(len(data)))
	}
	return nil
}

func (w *WasmSpace) oob(addr uint64, length uint32) *errors.Error {
	return errors.OutOfBounds(errors.PhaseBackend, addr, length,
		fmt.Errorf("outside guest linear memory (%d bytes)", w.mem.Size()))
}
