// Package loader deposits a decoded program into a VM's text segment and
// positions the program counter at its entry point.
package loader

import (
	"fmt"

	"github.com/classroom-arch/mips32-core/vm"
)

const textSegmentName = "text"

// unlock finds the named segment, records whether it was read-only, and
// clears the flag for the duration of a write. The returned reseal func
// restores the original flag.
func unlock(m *vm.MemoryMap, name string) (reseal func(), err error) {
	seg := m.SegmentByName(name)
	if seg == nil {
		return nil, fmt.Errorf("loader: no %q segment in memory map", name)
	}
	wasReadOnly := seg.ReadOnly()
	seg.SetReadOnly(false)
	return func() { seg.SetReadOnly(wasReadOnly) }, nil
}

// LoadWords writes words into the VM's text segment starting at addr, each
// one word (4 bytes) apart, then reseals the segment's original read-only
// state. It does not touch the program counter.
func LoadWords(m *vm.MemoryMap, addr uint32, words []uint32) error {
	reseal, err := unlock(m, textSegmentName)
	if err != nil {
		return err
	}
	defer reseal()

	for i, w := range words {
		wordAddr := addr + uint32(i)*4
		if err := m.SetWord(wordAddr, w); err != nil {
			return fmt.Errorf("loader: failed to write word %d at 0x%08X: %w", i, wordAddr, err)
		}
	}
	return nil
}

// LoadBytes writes raw bytes into the VM's text segment starting at addr,
// for embedders depositing a program image that was assembled elsewhere.
func LoadBytes(m *vm.MemoryMap, addr uint32, data []byte) error {
	reseal, err := unlock(m, textSegmentName)
	if err != nil {
		return err
	}
	defer reseal()

	for i, b := range data {
		byteAddr := addr + uint32(i)
		if err := m.SetByte(byteAddr, b); err != nil {
			return fmt.Errorf("loader: failed to write byte %d at 0x%08X: %w", i, byteAddr, err)
		}
	}
	return nil
}

// LoadProgram is the common case: deposit words at the VM's text-segment
// entry point and set PC there.
func LoadProgram(v *vm.VM, words []uint32) error {
	entry := v.Layout().TextLow
	if err := LoadWords(v.Memory, entry, words); err != nil {
		return err
	}
	v.SetPC(entry)
	return nil
}
