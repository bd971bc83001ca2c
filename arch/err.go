package arch

import (
	"github.com/ezrec/ucarch/register"
	"github.com/ezrec/ucarch/translate"
)

var f = translate.From

// ErrInstructionDuplicate indicates two instruction definitions sharing
// one name.
type ErrInstructionDuplicate struct {
	Name   string // The colliding instruction name.
	First  int    // Index of the first definition of the pair.
	Second int    // Index of the second definition of the pair.
}

func (ed *ErrInstructionDuplicate) Error() string {
	return f("instruction %v duplicated (definitions %d and %d)", ed.Name, ed.First, ed.Second)
}

// ErrRegisterUnresolved indicates an instruction involving a register the
// architecture does not define, by name and width.
type ErrRegisterUnresolved struct {
	Instruction string         // Instruction that involved the register.
	Register    string         // The unresolved register name.
	Width       register.Width // The width the instruction expected.
}

func (eu *ErrRegisterUnresolved) Error() string {
	return f("instruction %v: register %v (%v) not in architecture", eu.Instruction, eu.Register, eu.Width)
}

// ErrInstructionUnknown indicates an Execute call naming an instruction
// outside the architecture's table.
type ErrInstructionUnknown string

func (eu ErrInstructionUnknown) Error() string {
	return f("instruction %v unknown", string(eu))
}

func (eu ErrInstructionUnknown) Is(err error) (ok bool) {
	_, ok = err.(ErrInstructionUnknown)
	return
}

// ErrRegisterInvalid indicates a Read or Write naming a register outside
// the architecture's bank.
type ErrRegisterInvalid string

func (er ErrRegisterInvalid) Error() string {
	return f("register %v invalid", string(er))
}

func (er ErrRegisterInvalid) Is(err error) (ok bool) {
	_, ok = err.(ErrRegisterInvalid)
	return
}
