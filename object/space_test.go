package object

import (
	"fmt"
	"testing"

	"github.com/wippyai/memview"
)

// fakeSpace is an in-memory MemorySpace that counts backend calls, so
// tests can assert on laziness and on exactly-one-call access paths.
type fakeSpace struct {
	base    uint64
	data    []byte
	reads   int
	writes  int
	readErr error
}

func newFakeSpace(base uint64, data []byte) *fakeSpace {
	return &fakeSpace{base: base, data: data}
}

func (f *fakeSpace) Read(addr uint64, length uint32) ([]byte, error) {
	f.reads++
	if f.readErr != nil {
		return nil, f.readErr
	}
	if addr < f.base || addr+uint64(length) > f.base+uint64(len(f.data)) {
		return nil, fmt.Errorf("unmapped range 0x%x+%d", addr, length)
	}
	off := addr - f.base
	out := make([]byte, length)
	copy(out, f.data[off:off+uint64(length)])
	return out, nil
}

func (f *fakeSpace) Write(addr uint64, data []byte) error {
	f.writes++
	if addr < f.base || addr+uint64(len(data)) > f.base+uint64(len(f.data)) {
		return fmt.Errorf("unmapped range 0x%x+%d", addr, len(data))
	}
	copy(f.data[addr-f.base:], data)
	return nil
}

func newTestEngine(t *testing.T, cfg memview.Config) *Engine {
	t.Helper()
	eng, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return eng
}
