package vm

import "fmt"

// Format identifies which of the three MIPS32 instruction encodings a word
// belongs to.
type Format int

const (
	FormatR Format = iota
	FormatI
	FormatJ
)

// opcodeInfo is the decoder table entry for a mnemonic: its identity (name,
// format, opcode-or-funct value) shared by every decoded Instruction.
type opcodeInfo struct {
	Name   string
	Format Format
	Value  uint32 // opcode for I/J formats, funct for R format
}

// R-format instructions are all opcode 0, discriminated by funct.
var functTable = map[uint32]opcodeInfo{
	0x00: {"sll", FormatR, 0x00},
	0x02: {"srl", FormatR, 0x02},
	0x03: {"sra", FormatR, 0x03},
	0x04: {"sllv", FormatR, 0x04},
	0x06: {"srlv", FormatR, 0x06},
	0x07: {"srav", FormatR, 0x07},
	0x08: {"jr", FormatR, 0x08},
	0x09: {"jalr", FormatR, 0x09},
	0x0C: {"syscall", FormatR, 0x0C},
	0x10: {"mfhi", FormatR, 0x10},
	0x11: {"mthi", FormatR, 0x11},
	0x12: {"mflo", FormatR, 0x12},
	0x13: {"mtlo", FormatR, 0x13},
	0x18: {"mult", FormatR, 0x18},
	0x19: {"multu", FormatR, 0x19},
	0x1A: {"div", FormatR, 0x1A},
	0x1B: {"divu", FormatR, 0x1B},
	0x20: {"add", FormatR, 0x20},
	0x21: {"addu", FormatR, 0x21},
	0x22: {"sub", FormatR, 0x22},
	0x23: {"subu", FormatR, 0x23},
	0x24: {"and", FormatR, 0x24},
	0x25: {"or", FormatR, 0x25},
	0x26: {"xor", FormatR, 0x26},
	0x27: {"nor", FormatR, 0x27},
	0x2A: {"slt", FormatR, 0x2A},
	0x2B: {"sltu", FormatR, 0x2B},
}

// I/J-format instructions are discriminated by the top-level opcode.
var opcodeTable = map[uint32]opcodeInfo{
	0x02: {"j", FormatJ, 0x02},
	0x03: {"jal", FormatJ, 0x03},
	0x04: {"beq", FormatI, 0x04},
	0x05: {"bne", FormatI, 0x05},
	0x06: {"blez", FormatI, 0x06},
	0x07: {"bgtz", FormatI, 0x07},
	0x08: {"addi", FormatI, 0x08},
	0x09: {"addiu", FormatI, 0x09},
	0x0A: {"slti", FormatI, 0x0A},
	0x0B: {"sltiu", FormatI, 0x0B},
	0x0C: {"andi", FormatI, 0x0C},
	0x0D: {"ori", FormatI, 0x0D},
	0x0E: {"xori", FormatI, 0x0E},
	0x20: {"lb", FormatI, 0x20},
	0x21: {"lh", FormatI, 0x21},
	0x23: {"lw", FormatI, 0x23},
	0x24: {"lbu", FormatI, 0x24},
	0x25: {"lhu", FormatI, 0x25},
	0x28: {"sb", FormatI, 0x28},
	0x29: {"sh", FormatI, 0x29},
	0x2B: {"sw", FormatI, 0x2B},
}

// Instruction is a decoded 32-bit MIPS word: the opcode identity plus the
// format-specific operand fields. Only the fields for the decoded format
// are meaningful.
type Instruction struct {
	Word   uint32
	Name   string
	Format Format

	// R-format
	Rs, Rt, Rd int
	Shamt      uint32
	Funct      uint32

	// I-format
	Imm uint32 // raw 16-bit field, zero-extended into the low bits

	// J-format
	Address uint32 // raw 26-bit field
}

// IsNull reports whether this is the all-zero halt sentinel: an R-format
// word with funct=0 (sll) and rs=rt=rd=shamt=0.
func (i *Instruction) IsNull() bool {
	return i.Word == 0
}

// DecodeInstruction decodes a 32-bit word into an Instruction, or returns
// IllegalInstruction if no opcode/funct entry matches.
func DecodeInstruction(word uint32) (*Instruction, error) {
	opcode := (word >> 26) & 0x3F

	var info opcodeInfo
	var ok bool
	if opcode == 0 {
		funct := word & 0x3F
		info, ok = functTable[funct]
		if !ok {
			return nil, newRuntimeError(IllegalInstruction, "unknown R-format funct 0x%02X (word 0x%08X)", funct, word)
		}
	} else {
		info, ok = opcodeTable[opcode]
		if !ok {
			return nil, newRuntimeError(IllegalInstruction, "unknown opcode 0x%02X (word 0x%08X)", opcode, word)
		}
	}

	inst := &Instruction{Word: word, Name: info.Name, Format: info.Format}

	switch info.Format {
	case FormatR:
		inst.Rs = int((word >> 21) & 0x1F)
		inst.Rt = int((word >> 16) & 0x1F)
		inst.Rd = int((word >> 11) & 0x1F)
		inst.Shamt = (word >> 6) & 0x1F
		inst.Funct = word & 0x3F
	case FormatI:
		inst.Rs = int((word >> 21) & 0x1F)
		inst.Rt = int((word >> 16) & 0x1F)
		inst.Imm = word & 0xFFFF
	case FormatJ:
		inst.Address = word & 0x03FFFFFF
	}

	return inst, nil
}

// signExtendImm16 sign-extends a 16-bit immediate field to 32 bits.
func signExtendImm16(imm uint32) uint32 {
	return uint32(int32(int16(uint16(imm))))
}

// String renders the instruction the way a disassembly listing would: the
// mnemonic followed by its format-specific fields.
func (i *Instruction) String() string {
	switch i.Format {
	case FormatR:
		return fmt.Sprintf("%s %s, %s, %s (shamt %d)", i.Name, RegisterNames[i.Rd], RegisterNames[i.Rs], RegisterNames[i.Rt], i.Shamt)
	case FormatI:
		return fmt.Sprintf("%s %s, %s, %d", i.Name, RegisterNames[i.Rt], RegisterNames[i.Rs], AsInt32(signExtendImm16(i.Imm)))
	case FormatJ:
		return fmt.Sprintf("%s 0x%07X", i.Name, i.Address)
	default:
		return fmt.Sprintf("0x%08X", i.Word)
	}
}
