// Package bits provides small byte-level helpers used when picking apart
// status words and packed protocol fields.
package bits

// HighNibble returns the upper four bits of b, shifted down to [0, 15].
func HighNibble(b byte) byte {
	return b >> 4
}

// LowNibble returns the lower four bits of b.
func LowNibble(b byte) byte {
	return b & 0x0F
}

// IsSet checks if the n-th bit is set (1 to 8, least significant first).
func IsSet(b byte, n uint) bool {
	if n < 1 || n > 8 {
		return false
	}
	return b&(1<<(n-1)) != 0
}
