package um

import "fmt"

// Machine holds all state of one Universal Machine: the eight general
// registers, the execution finger, the active program array (array 0),
// and the table of live heap arrays keyed by a non-zero id.
//
// Fields are exported, mirroring the teacher's choice, so the whole
// struct can be gob-encoded directly for Snapshot/LoadSnapshot without
// custom (de)serialization code.
type Machine struct {
	Registers [8]Word
	Finger    Word
	Program   []Word
	Arrays    map[Word][]Word
	NextID    Word
}

// newState builds the zero-valued machine state for a freshly loaded
// program image.
func newState(program []Word) Machine {
	return Machine{
		Program: program,
		Arrays:  make(map[Word][]Word),
		NextID:  1,
	}
}

// ReadRegister returns the value of register i. Register fields are
// always 3 bits (0-7) by construction of Decode, but the accessor still
// bounds-checks to guard any future reuse of decoded operands and to
// give a single enforcement point (spec.md §4.2).
func (m *Machine) ReadRegister(i uint8) (Word, error) {
	if i >= 8 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidRegisterIndex, i)
	}
	return m.Registers[i], nil
}

// WriteRegister stores v in register i.
func (m *Machine) WriteRegister(i uint8, v Word) error {
	if i >= 8 {
		return fmt.Errorf("%w: %d", ErrInvalidRegisterIndex, i)
	}
	m.Registers[i] = v
	return nil
}

// ReadArray returns the word at offset off of array id. id 0 means the
// program array.
func (m *Machine) ReadArray(id, off Word) (Word, error) {
	if id == 0 {
		if int(off) >= len(m.Program) {
			return 0, fmt.Errorf("%w: offset %d, length %d", ErrProgramOutOfRange, off, len(m.Program))
		}
		return m.Program[off], nil
	}
	arr, ok := m.Arrays[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrInvalidArrayId, id)
	}
	if int(off) >= len(arr) {
		return 0, fmt.Errorf("%w: offset %d, length %d", ErrArrayOutOfRange, off, len(arr))
	}
	return arr[off], nil
}

// WriteArray stores v at offset off of array id. id 0 means the program
// array.
func (m *Machine) WriteArray(id, off, v Word) error {
	if id == 0 {
		if int(off) >= len(m.Program) {
			return fmt.Errorf("%w: offset %d, length %d", ErrProgramOutOfRange, off, len(m.Program))
		}
		m.Program[off] = v
		return nil
	}
	arr, ok := m.Arrays[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidArrayId, id)
	}
	if int(off) >= len(arr) {
		return fmt.Errorf("%w: offset %d, length %d", ErrArrayOutOfRange, off, len(arr))
	}
	arr[off] = v
	return nil
}

// AllocateArray creates a new zero-filled heap array of the given length
// and returns its id. The id allocation policy is a monotonically
// increasing counter that skips 0 on wraparound (spec.md §4.3); an
// implementer may also search for a free id on wraparound, but in
// practice no UM workload exhausts 2^32 allocations, so this
// implementation follows the teacher and original_source in not doing so.
func (m *Machine) AllocateArray(size Word) Word {
	id := m.NextID
	m.Arrays[id] = make([]Word, size)

	m.NextID++
	if m.NextID == 0 {
		m.NextID = 1
	}
	return id
}

// AbandonArray frees the heap array with the given id. Abandoning the
// program array (id 0) or an array that is not currently live is a fatal
// error.
func (m *Machine) AbandonArray(id Word) error {
	if id == 0 {
		return ErrCannotAbandonProgram
	}
	if _, ok := m.Arrays[id]; !ok {
		return fmt.Errorf("%w: %d", ErrInvalidArrayId, id)
	}
	delete(m.Arrays, id)
	return nil
}

// ReplaceProgram replaces the running program with a full value-copy of
// array id's current contents, leaving array id itself untouched, and
// sets the execution finger. id 0 is a fast path: only the finger moves,
// since the program is already array 0 and no copy is needed. This is
// the hottest instruction in realistic UM workloads (spec.md §4.3,
// §9), so the id-0 case must never allocate.
func (m *Machine) ReplaceProgram(id, finger Word) error {
	if id == 0 {
		m.Finger = finger
		return nil
	}
	src, ok := m.Arrays[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrInvalidArrayId, id)
	}
	newProgram := make([]Word, len(src))
	copy(newProgram, src)
	m.Program = newProgram
	m.Finger = finger
	return nil
}
