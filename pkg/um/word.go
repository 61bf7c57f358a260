// Package um implements the Universal Machine: a 32-bit register-based
// virtual machine with dynamically allocated arrays of words and
// self-modifying program memory via full program replacement.
package um

// Word is the UM's unit of storage and arithmetic: an unsigned 32-bit
// integer. All arithmetic on a Word wraps modulo 2^32, which Go's uint32
// already gives us for free.
type Word uint32

// EncodeWords packs a byte blob into big-endian 32-bit words, the wire
// format of a UM program image. A trailing partial word (len(b) not a
// multiple of 4) is zero-padded rather than rejected.
func EncodeWords(b []byte) []Word {
	n := (len(b) + 3) / 4
	words := make([]Word, n)
	for i := 0; i < n; i++ {
		var w Word
		for j := 0; j < 4; j++ {
			idx := i*4 + j
			var bv byte
			if idx < len(b) {
				bv = b[idx]
			}
			w = w<<8 | Word(bv)
		}
		words[i] = w
	}
	return words
}
