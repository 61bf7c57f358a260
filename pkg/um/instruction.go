package um

import "fmt"

// Opcode identifies one of the fourteen UM operators (spec.md §4.1).
type Opcode uint8

const (
	OpConditionalMove Opcode = iota
	OpArrayIndex
	OpArrayAmend
	OpAdd
	OpMultiply
	OpDivide
	OpNand
	OpHalt
	OpAllocate
	OpAbandon
	OpOutput
	OpInput
	OpLoadProgram
	OpOrthographic
)

// Instruction is the decoded form of one 32-bit program word: an opcode
// tag plus three 3-bit register operands, or (for Orthographic) a
// register operand and a 25-bit immediate. Keeping this a small value
// struct rather than a discriminated union keeps the hot decode/dispatch
// path allocation-free.
type Instruction struct {
	Op  Opcode
	A   uint8
	B   uint8
	C   uint8
	Imm Word
}

// Decode interprets a single program word as an Instruction. Unknown
// opcodes (14, 15) are reported as ErrUnknownInstruction.
func Decode(w Word) (Instruction, error) {
	op := Opcode(w >> 28)
	switch op {
	case OpConditionalMove, OpArrayIndex, OpArrayAmend, OpAdd, OpMultiply,
		OpDivide, OpNand, OpHalt, OpAllocate, OpAbandon, OpOutput, OpInput,
		OpLoadProgram:
		return Instruction{
			Op: op,
			A:  uint8((w >> 6) & 7),
			B:  uint8((w >> 3) & 7),
			C:  uint8(w & 7),
		}, nil
	case OpOrthographic:
		return Instruction{
			Op:  op,
			A:   uint8((w >> 25) & 7),
			Imm: w & ((1 << 25) - 1),
		}, nil
	default:
		return Instruction{}, fmt.Errorf("%w: opcode %d", ErrUnknownInstruction, op)
	}
}
