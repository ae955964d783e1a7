package memspace

import (
	"fmt"
	"os"

	"github.com/wippyai/memview/errors"
)

// FileSpace is a MemorySpace backed by one or more dump files, each
// mapped at its own base address. Reads and writes route to the region
// containing the address; writes stay in memory until Save flushes them
// back to the source files.
type FileSpace struct {
	regions []fileRegion
}

type fileRegion struct {
	path string
	buf  *Buffer
}

// Open loads a single dump file mapped at base. Convenience for the
// common one-file case.
func Open(path string, base uint64) (*FileSpace, error) {
	fs := NewFileSpace()
	if err := fs.AddFile(path, base); err != nil {
		return nil, err
	}
	return fs, nil
}

// NewFileSpace creates an empty space; add regions with AddFile.
func NewFileSpace() *FileSpace {
	return &FileSpace{}
}

// AddFile loads path and maps its contents at base. Regions must not
// overlap.
func (fs *FileSpace) AddFile(path string, base uint64) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.New(errors.PhaseBackend, errors.KindInvalidInput).
			Detail("load %s", path).
			Cause(err).
			Build()
	}

	buf := NewBuffer(base, data)
	for _, r := range fs.regions {
		if buf.Base() < r.buf.End() && r.buf.Base() < buf.End() {
			return errors.New(errors.PhaseBackend, errors.KindInvalidInput).
				Detail("%s overlaps region [0x%x, 0x%x)", path, r.buf.Base(), r.buf.End()).
				Build()
		}
	}

	fs.regions = append(fs.regions, fileRegion{path: path, buf: buf})
	return nil
}

// Read returns length bytes at addr from the region containing it.
func (fs *FileSpace) Read(addr uint64, length uint32) ([]byte, error) {
	for _, r := range fs.regions {
		if r.buf.Contains(addr) {
			return r.buf.Read(addr, length)
		}
	}
	return nil, fs.unmapped(addr, length)
}

// Write stores data at addr in the region containing it.
func (fs *FileSpace) Write(addr uint64, data []byte) error {
	for _, r := range fs.regions {
		if r.buf.Contains(addr) {
			return r.buf.Write(addr, data)
		}
	}
	return fs.unmapped(addr, uint32(len(data)))
}

// Save writes every region back to its source file.
func (fs *FileSpace) Save() error {
	for _, r := range fs.regions {
		if err := os.WriteFile(r.path, r.buf.data, 0o644); err != nil {
			return errors.New(errors.PhaseBackend, errors.KindInvalidInput).
				Detail("save %s", r.path).
				Cause(err).
				Build()
		}
	}
	return nil
}

func (fs *FileSpace) unmapped(addr uint64, length uint32) *errors.Error {
	return errors.OutOfBounds(errors.PhaseBackend, addr, length,
		fmt.Errorf("address not in any of %d mapped region(s)", len(fs.regions)))
}
