package vm

import "testing"

func TestSegmentUpDirection(t *testing.T) {
	s := NewSegment("text", 0x1000, 0x100, Up, false, false)
	if s.Low() != 0x1000 {
		t.Errorf("Low() = 0x%X, want 0x1000", s.Low())
	}
	if s.High() != 0x10FF {
		t.Errorf("High() = 0x%X, want 0x10FF", s.High())
	}
}

func TestSegmentDownDirection(t *testing.T) {
	s := NewSegment("stack", 0x2000, 0x100, Down, false, false)
	if s.Low() != 0x1F01 {
		t.Errorf("Low() = 0x%X, want 0x1F01", s.Low())
	}
	if s.High() != 0x2000 {
		t.Errorf("High() = 0x%X, want 0x2000", s.High())
	}
}

func TestAddSegmentRejectsOverlap(t *testing.T) {
	m := NewMemoryMap()
	if err := m.AddSegment(NewSegment("a", 0x1000, 0x100, Up, false, false)); err != nil {
		t.Fatalf("unexpected error adding first segment: %v", err)
	}
	err := m.AddSegment(NewSegment("b", 0x1080, 0x100, Up, false, false))
	if err == nil {
		t.Fatal("expected overlap error, got nil")
	}
}

func TestAddSegmentAcceptsAdjacent(t *testing.T) {
	m := NewMemoryMap()
	if err := m.AddSegment(NewSegment("a", 0x1000, 0x100, Up, false, false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.AddSegment(NewSegment("b", 0x1100, 0x100, Up, false, false)); err != nil {
		t.Fatalf("adjacent segments should not overlap: %v", err)
	}
}

func TestWordStoreLoadRoundTripBigEndian(t *testing.T) {
	m := NewMemoryMap()
	if err := m.AddSegment(NewSegment("data", 0x1000, 0x100, Up, false, false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.SetWord(0x1000, 0x01020304); err != nil {
		t.Fatalf("SetWord failed: %v", err)
	}

	b0, _ := m.GetByte(0x1000)
	b1, _ := m.GetByte(0x1001)
	b2, _ := m.GetByte(0x1002)
	b3, _ := m.GetByte(0x1003)
	if b0 != 0x01 || b1 != 0x02 || b2 != 0x03 || b3 != 0x04 {
		t.Fatalf("big-endian byte order wrong: got %02X %02X %02X %02X", b0, b1, b2, b3)
	}

	got, err := m.GetWord(0x1000)
	if err != nil {
		t.Fatalf("GetWord failed: %v", err)
	}
	if got != 0x01020304 {
		t.Errorf("GetWord = 0x%08X, want 0x01020304", got)
	}
}

func TestUnalignedWordAccessIsIllegal(t *testing.T) {
	m := NewMemoryMap()
	if err := m.AddSegment(NewSegment("data", 0x1000, 0x100, Up, false, false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err := m.GetWord(0x1001)
	if err == nil {
		t.Fatal("expected error for unaligned word read")
	}
	rerr, ok := err.(*RuntimeError)
	if !ok {
		t.Fatalf("expected *RuntimeError, got %T", err)
	}
	if rerr.Kind != IllegalMemoryAccess {
		t.Errorf("Kind = %v, want IllegalMemoryAccess", rerr.Kind)
	}
}

func TestReadOnlySegmentRejectsWrite(t *testing.T) {
	m := NewMemoryMap()
	if err := m.AddSegment(NewSegment("text", 0x1000, 0x100, Up, false, true)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.SetWord(0x1000, 0xDEADBEEF); err == nil {
		t.Fatal("expected write to read-only segment to fail")
	}

	seg := m.SegmentByName("text")
	seg.SetReadOnly(false)
	if err := m.SetWord(0x1000, 0xDEADBEEF); err != nil {
		t.Fatalf("unlocked write should succeed: %v", err)
	}
}

func TestSparseSegmentReadsZeroBeforeWrite(t *testing.T) {
	m := NewMemoryMap()
	if err := m.AddSegment(NewSegment("heap", 0x1000, 0x1000, Up, false, false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := m.GetByte(0x1500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != 0 {
		t.Errorf("unwritten byte = %d, want 0", b)
	}
}

func TestStaticSegmentRejectsOutOfRangeWrite(t *testing.T) {
	m := NewMemoryMap()
	if err := m.AddSegment(NewSegment("rom", 0x1000, 0x10, Up, true, false)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := m.SetByte(0x1020, 0x00); err == nil {
		t.Fatal("expected error writing beyond mapped segment")
	}
}
