package um

import (
	"encoding/gob"
	"io"
)

// VM drives one Universal Machine to completion: it pairs a Machine's
// state with the byte-in/byte-out channels the core consumes (spec.md
// §1's "external collaborators") and runs the fetch-decode-execute cycle.
type VM struct {
	state   Machine
	in      io.Reader
	out     io.Writer
	onInput func(Machine) error
}

// New builds a VM from a raw program image and the console's input and
// output byte streams.
func New(program []byte, in io.Reader, out io.Writer) *VM {
	return &VM{
		state: newState(EncodeWords(program)),
		in:    in,
		out:   out,
	}
}

// Resume builds a VM from previously captured state, as produced by
// LoadSnapshot. Used to continue a machine that was checkpointed and the
// process later restarted.
func Resume(state Machine, in io.Reader, out io.Writer) *VM {
	return &VM{state: state, in: in, out: out}
}

// OnBeforeInput registers a callback invoked immediately before each
// blocking Input read, with the state as it stood at that instant. The
// Machine value is a shallow copy: its Program slice and Arrays map share
// storage with the running machine. Intended for the checkpoint feature (SPEC_FULL.md §4): Input
// is the only point a guest program blocks on something outside the
// machine, so it is the only safe point to checkpoint without otherwise
// touching the single-threaded execution model (spec.md §5). A nil
// callback (the default) disables checkpointing.
func (vm *VM) OnBeforeInput(fn func(Machine) error) {
	vm.onInput = fn
}

// State returns the current machine state, suitable for passing to
// Snapshot. The caller must not resume execution and take a Snapshot of
// the returned value concurrently; the engine itself is strictly
// single-threaded (spec.md §5) and OnBeforeInput is the only reentrant
// point by design.
func (vm *VM) State() Machine {
	return vm.state
}

// Run drives the fetch-decode-execute cycle to completion (spec.md §4.4).
// It returns nil on normal termination (Halt, or the finger advancing
// past the end of the program) and a non-nil error on any fatal operator
// or decode error.
func (vm *VM) Run() error {
	for {
		if int(vm.state.Finger) >= len(vm.state.Program) {
			return nil
		}

		w := vm.state.Program[vm.state.Finger]
		// The finger advances before the operator runs. LoadProgram (and
		// nothing else) overwrites it again, so for LoadProgram this
		// pre-increment has no effect; every other instruction leaves the
		// finger on the following word (spec.md §4.4).
		vm.state.Finger++

		inst, err := Decode(w)
		if err != nil {
			return err
		}

		halt, err := vm.execute(inst)
		if err != nil {
			return err
		}
		if halt {
			return nil
		}
	}
}

// readByte reads one byte from the console input channel. Any read
// error, including a clean io.EOF, is treated as end-of-input: spec.md
// §9 records that the source this spec was distilled from collapses all
// transport errors into EOF, and this implementation preserves that.
func (vm *VM) readByte() (b byte, eof bool) {
	var buf [1]byte
	n, _ := vm.in.Read(buf[:])
	if n == 1 {
		return buf[0], false
	}
	return 0, true
}

// Snapshot gob-encodes machine state to w, the same technique the teacher
// uses for its backup files. Only the Machine value is persisted; the
// console's I/O channels are supplied fresh by the caller on restore.
func Snapshot(w io.Writer, state Machine) error {
	return gob.NewEncoder(w).Encode(state)
}

// LoadSnapshot decodes machine state previously written by Snapshot.
//
// LoadSnapshot treats every snapshot as one taken from OnBeforeInput, at
// which point the finger has already advanced past the Input instruction
// that triggered the callback (per the pre-increment rule in Run). The Input itself has
// not completed yet: no byte has been read and no register written.
// LoadSnapshot decrements the restored finger by one so that resuming
// re-fetches and re-executes that same Input instruction, mirroring the
// teacher's `ExFinger--` compensation in LoadFromBackup.
func LoadSnapshot(r io.Reader) (Machine, error) {
	var state Machine
	if err := gob.NewDecoder(r).Decode(&state); err != nil {
		return Machine{}, err
	}
	state.Finger--
	// gob omits zero-length map fields from the stream entirely, so a
	// snapshot taken before any array was ever allocated decodes with a
	// nil Arrays map. newState always populates it; restore must too, or
	// the first Allocate after resuming panics on the nil map write.
	if state.Arrays == nil {
		state.Arrays = make(map[Word][]Word)
	}
	return state, nil
}
