package vm

// Layout carries the addresses and sizes an embedder supplies to shape the
// VM's default memory map.
type Layout struct {
	TextLow   uint32
	DataLow   uint32
	HeapLow   uint32
	MMIOHigh  uint32
	StackHigh uint32

	HeapSize  uint32
	StackSize uint32
	MMIOSize  uint32
}

// MARS addresses, as documented in the default memory layout table.
const (
	marsTextLow   = 0x00400000
	marsDataLow   = 0x10010000
	marsHeapLow   = 0x10080000
	marsMMIOHigh  = 0xFFFF0000
	marsStackHigh = 0x7FFFFFFF

	defaultHeapSize  = 0x00100000 // 1MiB
	defaultStackSize = 0x00100000 // 1MiB
	defaultMMIOSize  = 0x00010000 // 64KiB

	textSize = marsDataLow - marsTextLow
	dataSize = marsHeapLow - marsDataLow
)

// MARSLayout returns the default "MARS" memory layout from the spec table.
//
// The MMIO segment is sized from its own high address downward by a
// configurable size rather than derived as mmio_high - stack_high: deriving
// it that way can overlap the stack, and AddSegment rejects overlapping
// segments at construction instead of silently permitting it.
func MARSLayout() Layout {
	return Layout{
		TextLow:   marsTextLow,
		DataLow:   marsDataLow,
		HeapLow:   marsHeapLow,
		MMIOHigh:  marsMMIOHigh,
		StackHigh: marsStackHigh,
		HeapSize:  defaultHeapSize,
		StackSize: defaultStackSize,
		MMIOSize:  defaultMMIOSize,
	}
}

// NewMemoryMapFromLayout builds the standard text/data/heap/mmio/stack
// segments described by layout. text and data are non-static and read-only
// until a loader unlocks text for program deposit; heap, mmio, and stack are
// writable from the start.
func NewMemoryMapFromLayout(layout Layout) (*MemoryMap, error) {
	m := NewMemoryMap()

	segments := []*Segment{
		NewSegment("text", layout.TextLow, textSize, Up, false, true),
		NewSegment("data", layout.DataLow, dataSize, Up, false, true),
		NewSegment("heap", layout.HeapLow, layout.HeapSize, Up, false, false),
		NewSegment("mmio", layout.MMIOHigh, layout.MMIOSize, Down, false, false),
		NewSegment("stack", layout.StackHigh, layout.StackSize, Down, false, false),
	}

	for _, s := range segments {
		if err := m.AddSegment(s); err != nil {
			return nil, err
		}
	}

	return m, nil
}
