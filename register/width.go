package register

import (
	"fmt"
)

// Width is the bit width of a register cell.
type Width int

const (
	Width8  = Width(8)  // 8-bit register
	Width16 = Width(16) // 16-bit register
	Width32 = Width(32) // 32-bit register
	Width64 = Width(64) // 64-bit register
)

// Valid reports whether the width is one of the supported register widths.
func (w Width) Valid() bool {
	switch w {
	case Width8, Width16, Width32, Width64:
		return true
	}

	return false
}

// Mask returns the all-ones bit pattern of the width.
func (w Width) Mask() (mask uint64) {
	if w == Width64 {
		return ^uint64(0)
	}

	return (uint64(1) << uint(w)) - 1
}

func (w Width) String() string {
	return fmt.Sprintf("u%d", int(w))
}
