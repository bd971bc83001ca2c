package arch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/ucarch/instruction"
	"github.com/ezrec/ucarch/register"
)

// demoDefs builds the canonical two-register demo machine: RA and RB,
// both 8-bit, with SWAP/INCA/DECA/ADD instructions.
func demoDefs() (regs []register.Definition, insts []instruction.Definition, behaviors Behaviors) {
	ra := Register("RA", register.Width8)
	rb := Register("RB", register.Width8)

	regs = []register.Definition{ra, rb}
	insts = []instruction.Definition{
		Instruction("SWAP", ra, rb),
		Instruction("INCA", ra),
		Instruction("DECA", ra),
		Instruction("ADD", ra, rb),
	}

	behaviors = Behaviors{
		"SWAP": func(view instruction.View) (err error) {
			a, err := view.Get("RA")
			if err != nil {
				return
			}
			b, err := view.Get("RB")
			if err != nil {
				return
			}
			if err = view.Set("RA", b); err != nil {
				return
			}
			err = view.Set("RB", a)
			return
		},
		"INCA": func(view instruction.View) (err error) {
			a, err := view.Get("RA")
			if err != nil {
				return
			}
			err = view.Set("RA", a+1)
			return
		},
		"DECA": func(view instruction.View) (err error) {
			a, err := view.Get("RA")
			if err != nil {
				return
			}
			err = view.Set("RA", a-1)
			return
		},
		"ADD": func(view instruction.View) (err error) {
			a, err := view.Get("RA")
			if err != nil {
				return
			}
			b, err := view.Get("RB")
			if err != nil {
				return
			}
			err = view.Set("RA", a+b)
			return
		},
	}

	return
}

func demoArch(t *testing.T) *Architecture {
	regs, insts, behaviors := demoDefs()
	ar, err := Assemble(regs, insts, behaviors)
	assert.NoError(t, err)

	return ar
}

func TestAssembleDuplicateRegister(t *testing.T) {
	assert := assert.New(t)

	regs := []register.Definition{
		Register("RA", register.Width8),
		Register("RB", register.Width8),
		Register("RA", register.Width16),
	}

	ar, err := Assemble(regs, nil, nil)
	assert.Nil(ar)

	var ed *register.ErrRegisterDuplicate
	if assert.ErrorAs(err, &ed) {
		assert.Equal("RA", ed.Name)
		assert.Equal(0, ed.First)
		assert.Equal(2, ed.Second)
	}
}

func TestAssembleDuplicateInstruction(t *testing.T) {
	assert := assert.New(t)

	ra := Register("RA", register.Width8)
	insts := []instruction.Definition{
		Instruction("INCA", ra),
		Instruction("NOP"),
		Instruction("INCA", ra),
	}
	nop := func(view instruction.View) error { return nil }

	ar, err := Assemble([]register.Definition{ra}, insts, Behaviors{
		"INCA": nop,
		"NOP":  nop,
	})
	assert.Nil(ar)

	var ed *ErrInstructionDuplicate
	if assert.ErrorAs(err, &ed) {
		assert.Equal("INCA", ed.Name)
		assert.Equal(0, ed.First)
		assert.Equal(2, ed.Second)
	}
}

func TestAssembleUnresolved(t *testing.T) {
	assert := assert.New(t)

	ra := Register("RA", register.Width8)
	nop := func(view instruction.View) error { return nil }

	table := [](struct {
		name     string
		involved register.Definition
	}){
		// Absent by name.
		{"absent", Register("RB", register.Width8)},
		// Present by name, wrong width: a generic instruction declared
		// against a wider RA does not resolve on this architecture.
		{"wrong_width", Register("RA", register.Width16)},
	}

	for _, entry := range table {
		insts := []instruction.Definition{Instruction("INCA", entry.involved)}
		ar, err := Assemble([]register.Definition{ra}, insts, Behaviors{"INCA": nop})
		assert.Nil(ar, entry.name)

		var eu *ErrRegisterUnresolved
		if assert.ErrorAs(err, &eu, entry.name) {
			assert.Equal("INCA", eu.Instruction, entry.name)
			assert.Equal(entry.involved.Name, eu.Register, entry.name)
			assert.Equal(entry.involved.Width, eu.Width, entry.name)
		}
	}
}

func TestAssembleBehaviorMissing(t *testing.T) {
	assert := assert.New(t)

	ra := Register("RA", register.Width8)
	insts := []instruction.Definition{Instruction("INCA", ra)}

	ar, err := Assemble([]register.Definition{ra}, insts, Behaviors{})
	assert.Nil(ar)
	assert.ErrorIs(err, instruction.ErrBehaviorMissing(""))
}

func TestExecuteUnknown(t *testing.T) {
	assert := assert.New(t)

	ar := demoArch(t)
	assert.NoError(ar.Write("RA", 7))
	assert.NoError(ar.Write("RB", 9))

	err := ar.Execute("MUL")
	assert.ErrorIs(err, ErrInstructionUnknown(""))

	// Registers are untouched by the failed dispatch.
	value, err := ar.Read("RA")
	assert.NoError(err)
	assert.Equal(uint64(7), value)
	value, err = ar.Read("RB")
	assert.NoError(err)
	assert.Equal(uint64(9), value)
}

func TestExecutePropagatesBehavior(t *testing.T) {
	assert := assert.New(t)

	ra := Register("RA", register.Width8)
	errTrap := errors.New("trap")

	ar, err := Assemble(
		[]register.Definition{ra},
		[]instruction.Definition{Instruction("TRAP", ra)},
		Behaviors{
			"TRAP": func(view instruction.View) error { return errTrap },
		},
	)
	assert.NoError(err)

	assert.ErrorIs(ar.Execute("TRAP"), errTrap)

	// A failed Execute does not invalidate the architecture.
	assert.ErrorIs(ar.Execute("TRAP"), errTrap)
}

func TestReadWrite(t *testing.T) {
	assert := assert.New(t)

	ar := demoArch(t)

	_, err := ar.Read("RC")
	assert.ErrorIs(err, ErrRegisterInvalid(""))
	assert.ErrorIs(ar.Write("RC", 0), ErrRegisterInvalid(""))

	// Writes mask to the register width.
	assert.NoError(ar.Write("RA", 0x1ff))
	value, err := ar.Read("RA")
	assert.NoError(err)
	assert.Equal(uint64(0xff), value)
}

func TestCapabilityScope(t *testing.T) {
	assert := assert.New(t)

	ar := demoArch(t)

	// INCA declared only RA; its view has no path to RB.
	bind, ok := ar.Binding("INCA")
	assert.True(ok)

	view := bind.View()
	assert.Equal(1, view.Len())
	_, ok = view.Cell("RB")
	assert.False(ok)

	var eu *instruction.ErrRegisterUnknown
	_, err := view.Get("RB")
	assert.ErrorAs(err, &eu)
	assert.ErrorAs(view.Set("RB", 1), &eu)
}

func TestEndToEnd(t *testing.T) {
	assert := assert.New(t)

	ar := demoArch(t)
	assert.NoError(ar.Write("RA", 0))
	assert.NoError(ar.Write("RB", 16))

	program := []string{"SWAP", "INCA", "SWAP", "INCA", "INCA", "DECA", "ADD"}
	for _, name := range program {
		assert.NoError(ar.Execute(name), name)
	}

	value, err := ar.Read("RA")
	assert.NoError(err)
	assert.Equal(uint64(18), value)

	value, err = ar.Read("RB")
	assert.NoError(err)
	assert.Equal(uint64(17), value)
}

func TestAssembleIdempotent(t *testing.T) {
	assert := assert.New(t)

	regs, insts, behaviors := demoDefs()

	one, err := Assemble(regs, insts, behaviors)
	assert.NoError(err)
	two, err := Assemble(regs, insts, behaviors)
	assert.NoError(err)

	// Structurally equal tables: same registers, widths, instructions.
	var oneRegs, twoRegs []register.Definition
	for name, cell := range one.Registers() {
		oneRegs = append(oneRegs, register.Define(name, cell.Width()))
	}
	for name, cell := range two.Registers() {
		twoRegs = append(twoRegs, register.Define(name, cell.Width()))
	}
	assert.Equal(oneRegs, twoRegs)

	var oneInsts, twoInsts []string
	for name := range one.Instructions() {
		oneInsts = append(oneInsts, name)
	}
	for name := range two.Instructions() {
		twoInsts = append(twoInsts, name)
	}
	assert.Equal(oneInsts, twoInsts)

	// Independent cells: mutating one architecture leaves the other alone.
	assert.NoError(one.Write("RA", 0x55))
	assert.NoError(two.Write("RA", 0xAA))

	value, err := one.Read("RA")
	assert.NoError(err)
	assert.Equal(uint64(0x55), value)

	value, err = two.Read("RA")
	assert.NoError(err)
	assert.Equal(uint64(0xAA), value)

	// Executing on one does not disturb the other.
	assert.NoError(one.Execute("INCA"))
	value, err = two.Read("RA")
	assert.NoError(err)
	assert.Equal(uint64(0xAA), value)
}
