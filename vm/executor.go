package vm

// resolveTarget reads the 32-bit value named by t: a register, a word in
// memory, or an immediate promoted per its Extension.
func (v *VM) resolveTarget(t Target) (uint32, error) {
	switch t.Kind {
	case TargetRegister:
		return v.Registers.Get(t.Reg)
	case TargetMemory:
		return v.Memory.GetWord(t.Addr)
	case TargetImmediate:
		if t.Extension == Sign {
			return signExtendImm16(t.Imm), nil
		}
		return t.Imm, nil
	default:
		return 0, newRuntimeError(IllegalInstruction, "unknown target kind %d", t.Kind)
	}
}

// writeTarget writes value to the destination named by t. Immediate targets
// cannot be written to.
func (v *VM) writeTarget(t Target, value uint32) error {
	switch t.Kind {
	case TargetRegister:
		return v.Registers.Set(t.Reg, value)
	case TargetMemory:
		return v.Memory.SetWord(t.Addr, value)
	default:
		return newRuntimeError(IllegalInstruction, "cannot write to immediate target")
	}
}

// Step fetches, decodes, lowers, and executes exactly one instruction.
//
// On success it returns the decoded instruction and, if the instruction
// raised a recoverable condition, a Trap. A Trap never prevents PC from
// having advanced; it only means the instruction's effect beyond that was
// suppressed (for add/sub overflow) or that some side effect could not be
// serviced (an unhandled syscall). A non-nil error is fatal: the embedder
// should stop calling Step.
//
// Ordering within one step: PC += 4, then operand reads, then memory reads,
// then arithmetic, then the destination write, then any HI/LO/PC writes a
// control-flow or accumulator operation makes.
func (v *VM) Step() (*Instruction, *Trap, error) {
	pc := v.Registers.PC()
	word, err := v.Memory.GetWord(pc)
	if err != nil {
		return nil, nil, err
	}

	inst, err := DecodeInstruction(word)
	if err != nil {
		return nil, nil, err
	}

	v.Registers.SetPC(pc + 4)

	if inst.IsNull() {
		return inst, nil, nil
	}

	op, err := Lower(inst)
	if err != nil {
		return nil, nil, err
	}

	trap, err := v.execute(op)
	if err != nil {
		return nil, nil, err
	}

	v.stats.InstructionsExecuted++
	if trap != nil {
		v.stats.TrapsRaised++
	}

	return inst, trap, nil
}

func (v *VM) execute(op *Operation) (*Trap, error) {
	switch op.Kind {
	case OpAdd:
		return v.executeAdd(op)
	case OpSub:
		return v.executeSub(op)
	case OpAnd, OpOr, OpXor, OpNor:
		return nil, v.executeBitwise(op)
	case OpShift:
		return nil, v.executeShift(op)
	case OpMult:
		return nil, v.executeMult(op)
	case OpDiv:
		return nil, v.executeDiv(op)
	case OpSetLessThan:
		return nil, v.executeSetLessThan(op)
	case OpBranch:
		return nil, v.executeBranch(op)
	case OpJump:
		return nil, v.executeJump(op)
	case OpLoad:
		return nil, v.executeLoad(op)
	case OpStore:
		return nil, v.executeStore(op)
	case OpMoveFromHI:
		return nil, v.Registers.Set(op.Dest.Reg, v.Registers.HI())
	case OpMoveFromLO:
		return nil, v.Registers.Set(op.Dest.Reg, v.Registers.LO())
	case OpMoveToHI:
		a, err := v.resolveTarget(op.A)
		if err != nil {
			return nil, err
		}
		v.Registers.SetHI(a)
		return nil, nil
	case OpMoveToLO:
		a, err := v.resolveTarget(op.A)
		if err != nil {
			return nil, err
		}
		v.Registers.SetLO(a)
		return nil, nil
	case OpSyscall:
		return v.executeSyscall()
	default:
		return nil, newRuntimeError(IllegalInstruction, "executor has no handler for operation kind %d", op.Kind)
	}
}

func (v *VM) executeAdd(op *Operation) (*Trap, error) {
	a, err := v.resolveTarget(op.A)
	if err != nil {
		return nil, err
	}
	b, err := v.resolveTarget(op.B)
	if err != nil {
		return nil, err
	}

	result := a + b
	if op.OverflowTrap && signedAddOverflows(a, b, result) {
		return newTrap("signed overflow adding 0x%08X and 0x%08X", a, b), nil
	}

	return nil, v.writeTarget(op.Dest, result)
}

func (v *VM) executeSub(op *Operation) (*Trap, error) {
	a, err := v.resolveTarget(op.A)
	if err != nil {
		return nil, err
	}
	b, err := v.resolveTarget(op.B)
	if err != nil {
		return nil, err
	}

	result := a - b
	if op.OverflowTrap && signedSubOverflows(a, b, result) {
		return newTrap("signed overflow subtracting 0x%08X from 0x%08X", b, a), nil
	}

	return nil, v.writeTarget(op.Dest, result)
}

// signedAddOverflows reports whether a+b overflows when a, b, and result are
// interpreted as two's-complement 32-bit signed integers: the operands'
// sign bits agree but differ from the result's sign bit.
func signedAddOverflows(a, b, result uint32) bool {
	return (a^result)&(b^result)&0x80000000 != 0
}

// signedSubOverflows reports whether a-b overflows in 32-bit signed space:
// the operands' sign bits differ, and the result's sign bit matches b's,
// not a's.
func signedSubOverflows(a, b, result uint32) bool {
	return (a^b)&(a^result)&0x80000000 != 0
}

func (v *VM) executeBitwise(op *Operation) error {
	a, err := v.resolveTarget(op.A)
	if err != nil {
		return err
	}
	b, err := v.resolveTarget(op.B)
	if err != nil {
		return err
	}

	var result uint32
	switch op.Kind {
	case OpAnd:
		result = a & b
	case OpOr:
		result = a | b
	case OpXor:
		result = a ^ b
	case OpNor:
		result = ^(a | b)
	}
	return v.writeTarget(op.Dest, result)
}

func (v *VM) executeShift(op *Operation) error {
	a, err := v.resolveTarget(op.A)
	if err != nil {
		return err
	}
	shiftAmount, err := v.resolveTarget(op.B)
	if err != nil {
		return err
	}
	shiftAmount %= 32

	var result uint32
	switch {
	case op.ShiftDirection == ShiftLeft:
		result = a << shiftAmount
	case op.ShiftKind == ShiftLogical:
		result = a >> shiftAmount
	default: // right, arithmetic
		result = uint32(int32(a) >> shiftAmount)
	}
	return v.writeTarget(op.Dest, result)
}

func (v *VM) executeMult(op *Operation) error {
	a, err := v.resolveTarget(op.A)
	if err != nil {
		return err
	}
	b, err := v.resolveTarget(op.B)
	if err != nil {
		return err
	}

	var product uint64
	if op.Signed {
		product = uint64(int64(int32(a)) * int64(int32(b)))
	} else {
		product = uint64(a) * uint64(b)
	}

	v.Registers.SetHI(uint32(product >> 32))
	v.Registers.SetLO(uint32(product))
	return nil
}

// executeDiv divides a by b. Division by zero leaves HI and LO unchanged
// rather than trapping; callers must check for a zero divisor themselves.
func (v *VM) executeDiv(op *Operation) error {
	a, err := v.resolveTarget(op.A)
	if err != nil {
		return err
	}
	b, err := v.resolveTarget(op.B)
	if err != nil {
		return err
	}

	if b == 0 {
		return nil
	}

	var quotient, remainder uint32
	if op.Signed {
		sa, sb := int32(a), int32(b)
		quotient = uint32(sa / sb)
		remainder = uint32(sa % sb)
	} else {
		quotient = a / b
		remainder = a % b
	}

	v.Registers.SetLO(quotient)
	v.Registers.SetHI(remainder)
	return nil
}

func (v *VM) executeSetLessThan(op *Operation) error {
	a, err := v.resolveTarget(op.A)
	if err != nil {
		return err
	}
	b, err := v.resolveTarget(op.B)
	if err != nil {
		return err
	}

	var less bool
	if op.Signed {
		less = int32(a) < int32(b)
	} else {
		less = a < b
	}

	var result uint32
	if less {
		result = 1
	}
	return v.writeTarget(op.Dest, result)
}

func (v *VM) executeBranch(op *Operation) error {
	a, err := v.resolveTarget(op.A)
	if err != nil {
		return err
	}

	var taken bool
	switch op.BranchCond {
	case CondEQ:
		b, err := v.resolveTarget(op.B)
		if err != nil {
			return err
		}
		taken = a == b
	case CondNE:
		b, err := v.resolveTarget(op.B)
		if err != nil {
			return err
		}
		taken = a != b
	case CondGTZ:
		taken = int32(a) > 0
	case CondLEZ:
		taken = int32(a) <= 0
	}

	if taken {
		v.Registers.SetPC(v.Registers.PC() + op.BranchOffset)
	}
	return nil
}

func (v *VM) executeJump(op *Operation) error {
	returnAddr := v.Registers.PC()

	var target uint32
	if op.JumpIsImmediate {
		target = (returnAddr & 0xF0000000) | (op.Offset << 2)
	} else {
		t, err := v.resolveTarget(op.JumpTarget)
		if err != nil {
			return err
		}
		target = t
	}

	if op.LinkReg >= 0 {
		if err := v.Registers.Set(op.LinkReg, returnAddr); err != nil {
			return err
		}
	}

	v.Registers.SetPC(target)
	return nil
}

func (v *VM) effectiveAddress(op *Operation) (uint32, error) {
	base, err := v.resolveTarget(op.Base)
	if err != nil {
		return 0, err
	}
	return base + op.Offset, nil
}

func (v *VM) executeLoad(op *Operation) error {
	addr, err := v.effectiveAddress(op)
	if err != nil {
		return err
	}

	var value uint32
	switch op.MemSize {
	case 1:
		b, err := v.Memory.GetByte(addr)
		if err != nil {
			return err
		}
		if op.MemSigned {
			value = uint32(int32(int8(b)))
		} else {
			value = uint32(b)
		}
	case 2:
		h, err := v.Memory.GetHalfword(addr)
		if err != nil {
			return err
		}
		if op.MemSigned {
			value = uint32(int32(int16(h)))
		} else {
			value = uint32(h)
		}
	case 4:
		w, err := v.Memory.GetWord(addr)
		if err != nil {
			return err
		}
		value = w
	default:
		return newRuntimeError(IllegalInstruction, "unsupported load size %d", op.MemSize)
	}

	return v.writeTarget(op.Dest, value)
}

func (v *VM) executeStore(op *Operation) error {
	addr, err := v.effectiveAddress(op)
	if err != nil {
		return err
	}
	value, err := v.resolveTarget(op.A)
	if err != nil {
		return err
	}

	switch op.MemSize {
	case 1:
		return v.Memory.SetByte(addr, byte(value))
	case 2:
		return v.Memory.SetHalfword(addr, uint16(value))
	case 4:
		return v.Memory.SetWord(addr, value)
	default:
		return newRuntimeError(IllegalInstruction, "unsupported store size %d", op.MemSize)
	}
}

func (v *VM) executeSyscall() (*Trap, error) {
	if v.syscallHandler == nil {
		return newTrap("syscall with no registered handler"), nil
	}
	return v.syscallHandler(v)
}
