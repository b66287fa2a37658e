// Package vm implements the MIPS32 instruction-set emulator core: a
// segmented memory map, a 32-register file with HI/LO accumulators, a
// decoder, an instruction-lowering scheduler, and an executor.
//
// The core executes one instruction per Step call, linearly: branch-delay
// and load-delay slots are not modeled, which deviates from hardware MIPS.
package vm

// SyscallHandler services a syscall operation. It receives the VM so it can
// read/write registers and memory, and returns a Trap if it cannot service
// the call (for example, an unrecognized syscall number). A nil error and
// nil trap mean the call was serviced normally.
type SyscallHandler func(v *VM) (*Trap, error)

// VM is the complete emulator core: memory, registers, and the counters an
// embedder can read for instrumentation. It owns its resources exclusively
// for its lifetime; it is not safe for concurrent use.
type VM struct {
	Memory    *MemoryMap
	Registers *RegisterFile

	layout Layout
	stats  Stats

	syscallHandler SyscallHandler
}

// New constructs a VM over the segments described by layout, with zeroed
// registers and PC set to the layout's text-segment low address.
func New(layout Layout) (*VM, error) {
	mem, err := NewMemoryMapFromLayout(layout)
	if err != nil {
		return nil, err
	}

	v := &VM{
		Memory:    mem,
		Registers: NewRegisterFile(),
		layout:    layout,
	}
	v.Registers.SetPC(layout.TextLow)
	return v, nil
}

// NewMARS constructs a VM using the default MARS memory layout.
func NewMARS() (*VM, error) {
	return New(MARSLayout())
}

// Layout returns the memory layout the VM was constructed with.
func (v *VM) Layout() Layout { return v.layout }

// RegisterSyscallHandler installs the handler used to service syscall
// operations. Passing nil means syscalls always trap.
func (v *VM) RegisterSyscallHandler(h SyscallHandler) {
	v.syscallHandler = h
}

// GetPC returns the program counter.
func (v *VM) GetPC() uint32 { return v.Registers.PC() }

// SetPC sets the program counter.
func (v *VM) SetPC(addr uint32) { v.Registers.SetPC(addr) }

// GetRegister returns the value of register idx.
func (v *VM) GetRegister(idx int) (uint32, error) { return v.Registers.Get(idx) }

// SetRegister writes value to register idx.
func (v *VM) SetRegister(idx int, value uint32) error { return v.Registers.Set(idx, value) }

// GetHI returns the HI accumulator.
func (v *VM) GetHI() uint32 { return v.Registers.HI() }

// SetHI sets the HI accumulator.
func (v *VM) SetHI(value uint32) { v.Registers.SetHI(value) }

// GetLO returns the LO accumulator.
func (v *VM) GetLO() uint32 { return v.Registers.LO() }

// SetLO sets the LO accumulator.
func (v *VM) SetLO(value uint32) { v.Registers.SetLO(value) }

// LoadWord writes a single instruction word directly to memory. It still
// honors segment read-only protection, so a write into the text segment
// fails unless that segment has been unlocked first (the loader package
// unlocks and reseals it around its own writes).
func (v *VM) LoadWord(addr uint32, word uint32) error {
	return v.Memory.SetWord(addr, word)
}

// DecodeInstruction decodes word without affecting VM state, exposed for
// disassembly.
func (v *VM) DecodeInstruction(word uint32) (*Instruction, error) {
	return DecodeInstruction(word)
}

// Stats returns a snapshot of the VM's lifetime counters.
func (v *VM) Stats() Stats {
	return v.stats
}
