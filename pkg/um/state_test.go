package um

import "testing"

import "errors"

// Decode can never itself produce a register index outside 0-7 (it's a
// 3-bit field), but state.go's accessors must still validate independently
// per spec.md §4.2, since they're a reusable enforcement point for any
// caller, not just the decoder.
func TestReadWriteRegisterValidatesIndex(t *testing.T) {
	m := newState([]Word{0})
	if _, err := m.ReadRegister(8); !errors.Is(err, ErrInvalidRegisterIndex) {
		t.Errorf("ReadRegister(8) = %v, want ErrInvalidRegisterIndex", err)
	}
	if err := m.WriteRegister(200, 1); !errors.Is(err, ErrInvalidRegisterIndex) {
		t.Errorf("WriteRegister(200, 1) = %v, want ErrInvalidRegisterIndex", err)
	}
	if err := m.WriteRegister(7, 42); err != nil {
		t.Fatalf("WriteRegister(7, ...): %v", err)
	}
	if got, err := m.ReadRegister(7); err != nil || got != 42 {
		t.Errorf("ReadRegister(7) = %v, %v; want 42, nil", got, err)
	}
}

func TestProgramArrayBoundsChecks(t *testing.T) {
	m := newState([]Word{10, 20})
	if _, err := m.ReadArray(0, 2); !errors.Is(err, ErrProgramOutOfRange) {
		t.Errorf("ReadArray(0, 2) = %v, want ErrProgramOutOfRange", err)
	}
	if err := m.WriteArray(0, 5, 1); !errors.Is(err, ErrProgramOutOfRange) {
		t.Errorf("WriteArray(0, 5, 1) = %v, want ErrProgramOutOfRange", err)
	}
	if v, err := m.ReadArray(0, 1); err != nil || v != 20 {
		t.Errorf("ReadArray(0, 1) = %v, %v; want 20, nil", v, err)
	}
}

func TestHeapArrayUnknownId(t *testing.T) {
	m := newState(nil)
	if _, err := m.ReadArray(99, 0); !errors.Is(err, ErrInvalidArrayId) {
		t.Errorf("ReadArray(99, 0) = %v, want ErrInvalidArrayId", err)
	}
	if err := m.WriteArray(99, 0, 1); !errors.Is(err, ErrInvalidArrayId) {
		t.Errorf("WriteArray(99, 0, 1) = %v, want ErrInvalidArrayId", err)
	}
}

func TestAbandonUnknownOrProgramId(t *testing.T) {
	m := newState(nil)
	if err := m.AbandonArray(0); !errors.Is(err, ErrCannotAbandonProgram) {
		t.Errorf("AbandonArray(0) = %v, want ErrCannotAbandonProgram", err)
	}
	if err := m.AbandonArray(1); !errors.Is(err, ErrInvalidArrayId) {
		t.Errorf("AbandonArray(1) = %v, want ErrInvalidArrayId", err)
	}
}

func TestReplaceProgramFastPathForId0(t *testing.T) {
	m := newState([]Word{1, 2, 3})
	before := m.Program
	if err := m.ReplaceProgram(0, 2); err != nil {
		t.Fatalf("ReplaceProgram(0, 2): %v", err)
	}
	if m.Finger != 2 {
		t.Errorf("Finger = %d, want 2", m.Finger)
	}
	// The program slice itself must be untouched (no allocation on the
	// id-0 fast path): same backing array.
	if &m.Program[0] != &before[0] {
		t.Errorf("ReplaceProgram(0, ...) reallocated the program array")
	}
}

func TestReplaceProgramCopiesNotAliases(t *testing.T) {
	m := newState([]Word{0})
	id := m.AllocateArray(2)
	m.Arrays[id][0] = 111
	m.Arrays[id][1] = 222

	if err := m.ReplaceProgram(id, 0); err != nil {
		t.Fatalf("ReplaceProgram: %v", err)
	}
	if len(m.Program) != 2 || m.Program[0] != 111 || m.Program[1] != 222 {
		t.Fatalf("Program = %v, want [111 222]", m.Program)
	}

	m.Arrays[id][0] = 999
	if m.Program[0] != 111 {
		t.Errorf("Program[0] = %d after mutating source array, want unchanged 111", m.Program[0])
	}
}
