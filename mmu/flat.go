package mmu

import (
	"fmt"
	"sync"

	"github.com/n-stott/x64emulator/types"
)

// Permission mirrors vm/memory.go's MemoryPermission bitset, generalized
// from ARM's byte-addressed segments to this core's 64-bit linear address
// space.
type Permission byte

const (
	PermNone    Permission = 0
	PermRead    Permission = 1 << 0
	PermWrite   Permission = 1 << 1
	PermExecute Permission = 1 << 2
)

// Segment is one mapped region of guest memory, the same shape as
// vm/memory.go's MemorySegment but addressed with uint64 rather than
// uint32 to cover the full x86-64 linear address space.
type Segment struct {
	Start       uint64
	Size        uint64
	Data        []byte
	Permissions Permission
	Name        string
}

// Flat is the reference MMU implementation: a list of named, permissioned
// segments backed by plain byte slices, little-endian throughout (x86-64
// has no other byte order), grounded directly on vm/memory.go's
// findSegment/checkAlignment/ReadByte…WriteWord shape and generalized to
// widths {8,16,32,64,80,128}.
type Flat struct {
	mu          sync.Mutex
	Segments    []*Segment
	AccessCount uint64
	ReadCount   uint64
	WriteCount  uint64
}

// NewFlat returns an MMU with no mapped segments; callers map code/data/
// heap/stack regions with AddSegment the way vm.NewMemory seeds its four
// standard segments.
func NewFlat() *Flat {
	return &Flat{Segments: make([]*Segment, 0, 4)}
}

// AddSegment maps a new region of guest memory.
func (m *Flat) AddSegment(name string, start, size uint64, perm Permission) {
	m.Segments = append(m.Segments, &Segment{
		Start: start, Size: size, Data: make([]byte, size),
		Permissions: perm, Name: name,
	})
}

func (m *Flat) findSegment(addr uint64) (*Segment, uint64, error) {
	for _, seg := range m.Segments {
		if addr >= seg.Start && addr < seg.Start+seg.Size {
			return seg, addr - seg.Start, nil
		}
	}
	return nil, 0, fmt.Errorf("mmu: address 0x%016X is not mapped", addr)
}

func (m *Flat) bytes(addr uint64, size uint64, perm Permission) ([]byte, error) {
	seg, offset, err := m.findSegment(addr)
	if err != nil {
		return nil, err
	}
	if seg.Permissions&perm == 0 {
		return nil, fmt.Errorf("mmu: permission denied for segment %q at 0x%016X", seg.Name, addr)
	}
	if offset+size > uint64(len(seg.Data)) {
		return nil, fmt.Errorf("mmu: access of %d bytes at 0x%016X exceeds segment %q bounds", size, addr, seg.Name)
	}
	return seg.Data[offset : offset+size], nil
}

func (m *Flat) read(addr uint64, size uint64) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.bytes(addr, size, PermRead)
	if err != nil {
		return nil, err
	}
	m.AccessCount++
	m.ReadCount++
	out := make([]byte, size)
	copy(out, b)
	return out, nil
}

func (m *Flat) write(addr uint64, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.bytes(addr, uint64(len(data)), PermWrite)
	if err != nil {
		return err
	}
	m.AccessCount++
	m.WriteCount++
	copy(b, data)
	return nil
}

func (m *Flat) Read8(addr uint64) (uint8, error) {
	b, err := m.read(addr, 1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (m *Flat) Read16(addr uint64) (uint16, error) {
	b, err := m.read(addr, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0]) | uint16(b[1])<<8, nil
}

func (m *Flat) Read32(addr uint64) (uint32, error) {
	b, err := m.read(addr, 4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24, nil
}

func (m *Flat) Read64(addr uint64) (uint64, error) {
	b, err := m.read(addr, 8)
	if err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < 8; i++ {
		v |= uint64(b[i]) << (8 * uint(i))
	}
	return v, nil
}

func (m *Flat) Read80(addr uint64) (types.Float80, error) {
	b, err := m.read(addr, 10)
	if err != nil {
		return types.Float80{}, err
	}
	var arr [10]byte
	copy(arr[:], b)
	return types.Float80FromBytes(arr), nil
}

func (m *Flat) readU128(addr uint64) (types.U128, error) {
	b, err := m.read(addr, 16)
	if err != nil {
		return types.U128{}, err
	}
	var arr [16]byte
	copy(arr[:], b)
	return types.U128FromBytes(arr), nil
}

// Read128 requires 16-byte alignment, matching MOVAPS/MOVAPD/FXSAVE's
// alignment assertion (spec.md §6).
func (m *Flat) Read128(addr uint64) (types.U128, error) {
	if addr%16 != 0 {
		return types.U128{}, fmt.Errorf("mmu: unaligned 128-bit read at 0x%016X (requires 16-byte alignment)", addr)
	}
	return m.readU128(addr)
}

// Read128Unaligned is MOVUPS/MOVUPD/MOVDQU's entry point: no alignment
// requirement.
func (m *Flat) Read128Unaligned(addr uint64) (types.U128, error) {
	return m.readU128(addr)
}

func (m *Flat) Write8(addr uint64, v uint8) error {
	return m.write(addr, []byte{v})
}

func (m *Flat) Write16(addr uint64, v uint16) error {
	return m.write(addr, []byte{byte(v), byte(v >> 8)})
}

func (m *Flat) Write32(addr uint64, v uint32) error {
	return m.write(addr, []byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

func (m *Flat) Write64(addr uint64, v uint64) error {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	return m.write(addr, b)
}

func (m *Flat) Write80(addr uint64, v types.Float80) error {
	b := v.Bytes()
	return m.write(addr, b[:])
}

func (m *Flat) writeU128(addr uint64, v types.U128) error {
	b := v.Bytes()
	return m.write(addr, b[:])
}

func (m *Flat) Write128(addr uint64, v types.U128) error {
	if addr%16 != 0 {
		return fmt.Errorf("mmu: unaligned 128-bit write at 0x%016X (requires 16-byte alignment)", addr)
	}
	return m.writeU128(addr, v)
}

func (m *Flat) Write128Unaligned(addr uint64, v types.U128) error {
	return m.writeU128(addr, v)
}

// WithExclusiveRegion{8,16,32,64} implement spec.md §6's
// with_exclusive_region<W>(addr, f): an atomic read-modify-write over a
// single location. Flat's single mutex covers the whole address space
// rather than one cache line, which is coarser than real hardware's
// cache-line granularity but satisfies the same linearizability contract
// this single-threaded interpreter actually needs (spec.md §7: "the core
// consumes that guarantee from the collaborator and does not itself
// introduce additional ordering").
func (m *Flat) WithExclusiveRegion8(addr uint64, f func(old uint8) uint8) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.bytes(addr, 1, PermRead|PermWrite)
	if err != nil {
		return err
	}
	b[0] = f(b[0])
	m.AccessCount += 2
	m.ReadCount++
	m.WriteCount++
	return nil
}

func (m *Flat) WithExclusiveRegion16(addr uint64, f func(old uint16) uint16) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.bytes(addr, 2, PermRead|PermWrite)
	if err != nil {
		return err
	}
	old := uint16(b[0]) | uint16(b[1])<<8
	nv := f(old)
	b[0], b[1] = byte(nv), byte(nv>>8)
	m.AccessCount += 2
	m.ReadCount++
	m.WriteCount++
	return nil
}

func (m *Flat) WithExclusiveRegion32(addr uint64, f func(old uint32) uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.bytes(addr, 4, PermRead|PermWrite)
	if err != nil {
		return err
	}
	old := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	nv := f(old)
	b[0], b[1], b[2], b[3] = byte(nv), byte(nv>>8), byte(nv>>16), byte(nv>>24)
	m.AccessCount += 2
	m.ReadCount++
	m.WriteCount++
	return nil
}

func (m *Flat) WithExclusiveRegion64(addr uint64, f func(old uint64) uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, err := m.bytes(addr, 8, PermRead|PermWrite)
	if err != nil {
		return err
	}
	var old uint64
	for i := 0; i < 8; i++ {
		old |= uint64(b[i]) << (8 * uint(i))
	}
	nv := f(old)
	for i := 0; i < 8; i++ {
		b[i] = byte(nv >> (8 * uint(i)))
	}
	m.AccessCount += 2
	m.ReadCount++
	m.WriteCount++
	return nil
}

func (m *Flat) CheckExecute(addr uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	seg, _, err := m.findSegment(addr)
	if err != nil {
		return err
	}
	if seg.Permissions&PermExecute == 0 {
		return fmt.Errorf("mmu: execute permission denied for segment %q at 0x%016X", seg.Name, addr)
	}
	return nil
}

var _ MMU = (*Flat)(nil)
