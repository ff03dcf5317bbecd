// Package mmu is the dispatcher's memory collaborator (spec.md §4, §6):
// typed reads/writes at widths {8,16,32,64,80,128}, with separate aligned
// and unaligned 128-bit entry points, and an atomic read-modify-write
// primitive over widths {8,16,32,64} backing LOCK-prefixed instructions.
// Address translation, page protection, and alignment faulting beyond the
// explicit MOVAPS/MOVAPD/FXSAVE/FXRSTOR alignment assertions are out of
// scope (spec.md §1 Non-goals); this package only ever sees linear
// addresses the dispatcher has already computed.
package mmu

import "github.com/n-stott/x64emulator/types"

// MMU is the interface cpu/ depends on to read and write guest memory. A
// real implementation (Flat, in this package) backs a single flat address
// space; tests and the dispatcher depend only on this contract.
type MMU interface {
	Read8(addr uint64) (uint8, error)
	Read16(addr uint64) (uint16, error)
	Read32(addr uint64) (uint32, error)
	Read64(addr uint64) (uint64, error)
	Read80(addr uint64) (types.Float80, error)
	Read128(addr uint64) (types.U128, error)
	Read128Unaligned(addr uint64) (types.U128, error)

	Write8(addr uint64, v uint8) error
	Write16(addr uint64, v uint16) error
	Write32(addr uint64, v uint32) error
	Write64(addr uint64, v uint64) error
	Write80(addr uint64, v types.Float80) error
	Write128(addr uint64, v types.U128) error
	Write128Unaligned(addr uint64, v types.U128) error

	// WithExclusiveRegion performs an atomic read-modify-write over the W-bit
	// location at addr: reads the current value, calls f(old) for the new
	// value, and writes it back, all as a single linearizable step
	// (spec.md §6's with_exclusive_region contract). Width is selected by
	// which of WithExclusiveRegion8/16/32/64 the caller uses — Go
	// interfaces can't carry a generic method, so these typed entry
	// points stand in for spec.md's `with_exclusive_region<W>`.
	WithExclusiveRegion8(addr uint64, f func(old uint8) uint8) error
	WithExclusiveRegion16(addr uint64, f func(old uint16) uint16) error
	WithExclusiveRegion32(addr uint64, f func(old uint32) uint32) error
	WithExclusiveRegion64(addr uint64, f func(old uint64) uint64) error

	// CheckExecute reports whether addr is mapped with execute permission,
	// for the dispatcher's instruction-fetch path.
	CheckExecute(addr uint64) error
}
