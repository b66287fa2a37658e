package vm

import "testing"

func TestMARSLayoutSegmentsDoNotOverlap(t *testing.T) {
	layout := MARSLayout()
	m, err := NewMemoryMapFromLayout(layout)
	if err != nil {
		t.Fatalf("MARS layout should build without overlap: %v", err)
	}
	if len(m.Segments()) != 5 {
		t.Errorf("expected 5 segments, got %d", len(m.Segments()))
	}
}

func TestMARSLayoutTextIsReadOnlyUntilUnlocked(t *testing.T) {
	m, err := NewMemoryMapFromLayout(MARSLayout())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := m.SegmentByName("text")
	if !text.ReadOnly() {
		t.Error("text segment should start read-only")
	}
}

func TestMARSLayoutHeapAndStackAreWritable(t *testing.T) {
	m, err := NewMemoryMapFromLayout(MARSLayout())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.SegmentByName("heap").ReadOnly() {
		t.Error("heap segment should be writable")
	}
	if m.SegmentByName("stack").ReadOnly() {
		t.Error("stack segment should be writable")
	}
}
