package script

import (
	"github.com/ezrec/ucarch/translate"
)

var f = translate.From

// ErrScriptRegister indicates an instruction() register entry that is not
// the name of a declared register.
type ErrScriptRegister string

func (er ErrScriptRegister) Error() string {
	return f("register %v not declared", string(er))
}

func (er ErrScriptRegister) Is(err error) (ok bool) {
	_, ok = err.(ErrScriptRegister)
	return
}

// ErrScriptValue indicates a behavior left a non-integer value in its
// register dict.
type ErrScriptValue struct {
	Instruction string // Instruction whose behavior produced the value.
	Register    string // Dict key the value was stored under.
	Value       string // The offending value, rendered.
}

func (ev *ErrScriptValue) Error() string {
	return f("instruction %v: register %v value %v is not an integer", ev.Instruction, ev.Register, ev.Value)
}
