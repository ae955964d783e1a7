// Package memspace provides MemorySpace backends.
//
//   - Buffer: one contiguous in-memory region at a base address
//   - FileSpace: one or more RAM dump files mapped at base addresses,
//     with write-back via Save
//   - RetroArch: live emulator memory over the RetroArch UDP network
//     command protocol
//   - WasmSpace: live wazero guest linear memory
//
// All backends speak the shared error taxonomy: any declined range
// surfaces as out_of_bounds with the backend's own failure preserved as
// the cause, so callers can handle a missing dump region and a detached
// emulator the same way.
package memspace
