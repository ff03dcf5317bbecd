package mmu

import (
	"testing"

	"github.com/n-stott/x64emulator/types"
)

func newTestFlat() *Flat {
	m := NewFlat()
	m.AddSegment("data", 0x1000, 0x1000, PermRead|PermWrite)
	m.AddSegment("code", 0x2000, 0x1000, PermRead|PermExecute)
	return m
}

func TestFlatReadWriteWidths(t *testing.T) {
	m := newTestFlat()

	if err := m.Write8(0x1000, 0xAB); err != nil {
		t.Fatalf("Write8: %v", err)
	}
	if v, err := m.Read8(0x1000); err != nil || v != 0xAB {
		t.Errorf("Read8 = %#x, %v", v, err)
	}

	if err := m.Write16(0x1010, 0xBEEF); err != nil {
		t.Fatalf("Write16: %v", err)
	}
	if v, err := m.Read16(0x1010); err != nil || v != 0xBEEF {
		t.Errorf("Read16 = %#x, %v", v, err)
	}

	if err := m.Write32(0x1020, 0xDEADBEEF); err != nil {
		t.Fatalf("Write32: %v", err)
	}
	if v, err := m.Read32(0x1020); err != nil || v != 0xDEADBEEF {
		t.Errorf("Read32 = %#x, %v", v, err)
	}

	if err := m.Write64(0x1030, 0x0123456789ABCDEF); err != nil {
		t.Fatalf("Write64: %v", err)
	}
	if v, err := m.Read64(0x1030); err != nil || v != 0x0123456789ABCDEF {
		t.Errorf("Read64 = %#x, %v", v, err)
	}
}

func TestFlatLittleEndian(t *testing.T) {
	m := newTestFlat()
	if err := m.Write32(0x1000, 0x01020304); err != nil {
		t.Fatalf("Write32: %v", err)
	}
	b, err := m.read(0x1000, 4)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := []byte{0x04, 0x03, 0x02, 0x01}
	for i := range want {
		if b[i] != want[i] {
			t.Fatalf("byte %d = %#x, want %#x", i, b[i], want[i])
		}
	}
}

func TestFlat80And128RoundTrip(t *testing.T) {
	m := newTestFlat()

	f := types.Float80FromInt64(-7)
	if err := m.Write80(0x1040, f); err != nil {
		t.Fatalf("Write80: %v", err)
	}
	got, err := m.Read80(0x1040)
	if err != nil || got != f {
		t.Errorf("Read80 = %+v, %v, want %+v", got, err, f)
	}

	v := types.U128{Lo: 0x1111111111111111, Hi: 0x2222222222222222}
	if err := m.Write128(0x1100, v); err != nil { // 16-byte aligned
		t.Fatalf("Write128: %v", err)
	}
	gotV, err := m.Read128(0x1100)
	if err != nil || !gotV.Equal(v) {
		t.Errorf("Read128 = %+v, %v, want %+v", gotV, err, v)
	}
}

func TestFlat128AlignmentEnforced(t *testing.T) {
	m := newTestFlat()
	v := types.U128{Lo: 1, Hi: 2}

	if err := m.Write128(0x1001, v); err == nil {
		t.Error("expected Write128 to reject an unaligned address")
	}
	if _, err := m.Read128(0x1001); err == nil {
		t.Error("expected Read128 to reject an unaligned address")
	}

	// Unaligned variants must succeed at the same address.
	if err := m.Write128Unaligned(0x1001, v); err != nil {
		t.Fatalf("Write128Unaligned: %v", err)
	}
	got, err := m.Read128Unaligned(0x1001)
	if err != nil || !got.Equal(v) {
		t.Errorf("Read128Unaligned = %+v, %v, want %+v", got, err, v)
	}
}

func TestFlatPermissionDenied(t *testing.T) {
	m := newTestFlat()
	// "code" segment has no write permission.
	if err := m.Write8(0x2000, 1); err == nil {
		t.Error("expected write to read/execute segment to fail")
	}
}

func TestFlatOutOfBounds(t *testing.T) {
	m := newTestFlat()
	if _, err := m.Read8(0x5000); err == nil {
		t.Error("expected read of unmapped address to fail")
	}
	if _, err := m.Read64(0x1FFC); err == nil {
		t.Error("expected a read that overruns the segment to fail")
	}
}

func TestFlatCheckExecute(t *testing.T) {
	m := newTestFlat()
	if err := m.CheckExecute(0x2000); err != nil {
		t.Errorf("expected code segment to be executable: %v", err)
	}
	if err := m.CheckExecute(0x1000); err == nil {
		t.Error("expected data segment to not be executable")
	}
}

func TestFlatWithExclusiveRegion(t *testing.T) {
	m := newTestFlat()
	if err := m.Write32(0x1050, 10); err != nil {
		t.Fatalf("Write32: %v", err)
	}

	err := m.WithExclusiveRegion32(0x1050, func(old uint32) uint32 {
		return old + 5
	})
	if err != nil {
		t.Fatalf("WithExclusiveRegion32: %v", err)
	}

	got, err := m.Read32(0x1050)
	if err != nil || got != 15 {
		t.Errorf("Read32 after WithExclusiveRegion32 = %d, %v, want 15", got, err)
	}
}

func TestFlatWithExclusiveRegion64(t *testing.T) {
	m := newTestFlat()
	if err := m.Write64(0x1060, 100); err != nil {
		t.Fatalf("Write64: %v", err)
	}

	err := m.WithExclusiveRegion64(0x1060, func(old uint64) uint64 {
		return old * 2
	})
	if err != nil {
		t.Fatalf("WithExclusiveRegion64: %v", err)
	}

	got, err := m.Read64(0x1060)
	if err != nil || got != 200 {
		t.Errorf("Read64 after WithExclusiveRegion64 = %d, %v, want 200", got, err)
	}
}

func TestFlatAccessCounters(t *testing.T) {
	m := newTestFlat()
	before := m.AccessCount

	if _, err := m.Read8(0x1000); err != nil {
		t.Fatalf("Read8: %v", err)
	}
	if err := m.Write8(0x1000, 1); err != nil {
		t.Fatalf("Write8: %v", err)
	}

	if m.AccessCount != before+2 {
		t.Errorf("AccessCount = %d, want %d", m.AccessCount, before+2)
	}
	if m.ReadCount == 0 {
		t.Error("expected ReadCount to be incremented")
	}
	if m.WriteCount == 0 {
		t.Error("expected WriteCount to be incremented")
	}
}

var _ MMU = (*Flat)(nil)
