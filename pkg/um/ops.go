package um

import "fmt"

// execute carries out the effect of a single decoded instruction against
// the VM's state, performing I/O for Output/Input. It reports whether the
// machine should halt, and any fatal error (spec.md §4.3).
func (vm *VM) execute(inst Instruction) (halt bool, err error) {
	switch inst.Op {
	case OpConditionalMove:
		test, err := vm.state.ReadRegister(inst.C)
		if err != nil {
			return false, err
		}
		if test != 0 {
			src, err := vm.state.ReadRegister(inst.B)
			if err != nil {
				return false, err
			}
			if err := vm.state.WriteRegister(inst.A, src); err != nil {
				return false, err
			}
		}
		return false, nil

	case OpArrayIndex:
		arrID, err := vm.state.ReadRegister(inst.B)
		if err != nil {
			return false, err
		}
		off, err := vm.state.ReadRegister(inst.C)
		if err != nil {
			return false, err
		}
		v, err := vm.state.ReadArray(arrID, off)
		if err != nil {
			return false, err
		}
		return false, vm.state.WriteRegister(inst.A, v)

	case OpArrayAmend:
		arrID, err := vm.state.ReadRegister(inst.A)
		if err != nil {
			return false, err
		}
		off, err := vm.state.ReadRegister(inst.B)
		if err != nil {
			return false, err
		}
		v, err := vm.state.ReadRegister(inst.C)
		if err != nil {
			return false, err
		}
		return false, vm.state.WriteArray(arrID, off, v)

	case OpAdd:
		x, y, err := vm.readBC(inst)
		if err != nil {
			return false, err
		}
		return false, vm.state.WriteRegister(inst.A, x+y)

	case OpMultiply:
		x, y, err := vm.readBC(inst)
		if err != nil {
			return false, err
		}
		return false, vm.state.WriteRegister(inst.A, x*y)

	case OpDivide:
		x, y, err := vm.readBC(inst)
		if err != nil {
			return false, err
		}
		if y == 0 {
			return false, ErrDivideByZero
		}
		return false, vm.state.WriteRegister(inst.A, x/y)

	case OpNand:
		x, y, err := vm.readBC(inst)
		if err != nil {
			return false, err
		}
		return false, vm.state.WriteRegister(inst.A, ^(x & y))

	case OpHalt:
		return true, nil

	case OpAllocate:
		size, err := vm.state.ReadRegister(inst.C)
		if err != nil {
			return false, err
		}
		id := vm.state.AllocateArray(size)
		return false, vm.state.WriteRegister(inst.B, id)

	case OpAbandon:
		id, err := vm.state.ReadRegister(inst.C)
		if err != nil {
			return false, err
		}
		return false, vm.state.AbandonArray(id)

	case OpOutput:
		v, err := vm.state.ReadRegister(inst.C)
		if err != nil {
			return false, err
		}
		if v > 255 {
			return false, fmt.Errorf("%w: %d", ErrInvalidOutput, v)
		}
		_, err = vm.out.Write([]byte{byte(v)})
		return false, err

	case OpInput:
		if vm.onInput != nil {
			if err := vm.onInput(vm.state); err != nil {
				return false, err
			}
		}
		b, eof := vm.readByte()
		if eof {
			return false, vm.state.WriteRegister(inst.C, 0xFFFFFFFF)
		}
		return false, vm.state.WriteRegister(inst.C, Word(b))

	case OpLoadProgram:
		id, err := vm.state.ReadRegister(inst.B)
		if err != nil {
			return false, err
		}
		finger, err := vm.state.ReadRegister(inst.C)
		if err != nil {
			return false, err
		}
		return false, vm.state.ReplaceProgram(id, finger)

	case OpOrthographic:
		return false, vm.state.WriteRegister(inst.A, inst.Imm)

	default:
		return false, fmt.Errorf("%w: opcode %d", ErrUnknownInstruction, inst.Op)
	}
}

// readBC is a small helper for the three-operand arithmetic/bitwise
// operators, which all read reg[B] and reg[C] before combining them.
func (vm *VM) readBC(inst Instruction) (b, c Word, err error) {
	b, err = vm.state.ReadRegister(inst.B)
	if err != nil {
		return 0, 0, err
	}
	c, err = vm.state.ReadRegister(inst.C)
	if err != nil {
		return 0, 0, err
	}
	return b, c, nil
}
