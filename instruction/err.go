package instruction

import (
	"github.com/ezrec/ucarch/translate"
)

var f = translate.From

// ErrRegisterUnknown indicates a register name with no cell in the bank
// the instruction was bound against.
type ErrRegisterUnknown struct {
	Instruction string // Instruction that referenced the register.
	Register    string // The unknown register name.
}

func (eu *ErrRegisterUnknown) Error() string {
	return f("instruction %v: register %v unknown", eu.Instruction, eu.Register)
}

// ErrBehaviorMissing indicates an instruction bound without a behavior.
type ErrBehaviorMissing string

func (eb ErrBehaviorMissing) Error() string {
	return f("instruction %v: behavior missing", string(eb))
}

func (eb ErrBehaviorMissing) Is(err error) (ok bool) {
	_, ok = err.(ErrBehaviorMissing)
	return
}
