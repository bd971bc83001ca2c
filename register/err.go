package register

import (
	"github.com/ezrec/ucarch/translate"
)

var f = translate.From

// ErrWidth indicates a register width outside the supported set.
type ErrWidth Width

func (ew ErrWidth) Error() string {
	return f("register width %d unsupported", int(ew))
}

func (ew ErrWidth) Is(err error) (ok bool) {
	_, ok = err.(ErrWidth)
	return
}

// ErrRegisterDuplicate indicates two definitions sharing one name.
type ErrRegisterDuplicate struct {
	Name   string // The colliding register name.
	First  int    // Index of the first definition of the pair.
	Second int    // Index of the second definition of the pair.
}

func (ed *ErrRegisterDuplicate) Error() string {
	return f("register %v duplicated (definitions %d and %d)", ed.Name, ed.First, ed.Second)
}
