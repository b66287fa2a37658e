package vm

// Register aliases for the 32 general-purpose registers.
const (
	ZERO = 0 // $zero, hard-wired to 0
	AT   = 1
	V0   = 2
	V1   = 3
	A0   = 4
	A1   = 5
	A2   = 6
	A3   = 7
	T0   = 8
	T1   = 9
	T2   = 10
	T3   = 11
	T4   = 12
	T5   = 13
	T6   = 14
	T7   = 15
	S0   = 16
	S1   = 17
	S2   = 18
	S3   = 19
	S4   = 20
	S5   = 21
	S6   = 22
	S7   = 23
	T8   = 24
	T9   = 25
	K0   = 26
	K1   = 27
	GP   = 28
	SP   = 29
	FP   = 30
	RA   = 31
)

// RegisterNames maps canonical index to its conventional name, in index order.
var RegisterNames = [32]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// RegisterFile holds the 32 general-purpose registers plus PC, HI, and LO.
// Register 0 always reads as 0 and rejects writes.
type RegisterFile struct {
	gpr [32]uint32
	pc  uint32
	hi  uint32
	lo  uint32
}

// NewRegisterFile returns a zeroed register file.
func NewRegisterFile() *RegisterFile {
	return &RegisterFile{}
}

// Get returns the value of register idx. idx must be in [0, 31].
func (r *RegisterFile) Get(idx int) (uint32, error) {
	if idx < 0 || idx > 31 {
		return 0, newRuntimeError(IllegalRegisterAccess, "register index %d out of range", idx)
	}
	if idx == ZERO {
		return 0, nil
	}
	return r.gpr[idx], nil
}

// Set writes value to register idx. Writing to $zero is rejected.
func (r *RegisterFile) Set(idx int, value uint32) error {
	if idx < 0 || idx > 31 {
		return newRuntimeError(IllegalRegisterAccess, "register index %d out of range", idx)
	}
	if idx == ZERO {
		return newRuntimeError(IllegalRegisterAccess, "write to $zero is not permitted")
	}
	r.gpr[idx] = value
	return nil
}

// PC returns the program counter.
func (r *RegisterFile) PC() uint32 { return r.pc }

// SetPC sets the program counter.
func (r *RegisterFile) SetPC(addr uint32) { r.pc = addr }

// HI returns the HI accumulator.
func (r *RegisterFile) HI() uint32 { return r.hi }

// SetHI sets the HI accumulator.
func (r *RegisterFile) SetHI(v uint32) { r.hi = v }

// LO returns the LO accumulator.
func (r *RegisterFile) LO() uint32 { return r.lo }

// SetLO sets the LO accumulator.
func (r *RegisterFile) SetLO(v uint32) { r.lo = v }
