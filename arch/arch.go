// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package arch

import (
	"fmt"
	"iter"
	"log"
	"slices"

	"github.com/ezrec/ucarch/instruction"
	"github.com/ezrec/ucarch/internal"
	"github.com/ezrec/ucarch/register"
)

// Register returns an unvalidated register definition.
func Register(name string, width register.Width) register.Definition {
	return register.Define(name, width)
}

// Instruction returns an unvalidated instruction definition.
func Instruction(name string, regs ...register.Definition) instruction.Definition {
	return instruction.Define(name, regs...)
}

// Behaviors maps instruction names to their behavior functions.
type Behaviors map[string]instruction.Behavior

// Architecture is an assembled, validated pairing of a register bank and
// an instruction table. It owns its bank and bindings exclusively; the
// bindings alias the bank's cells by design, since instructions operate
// on shared architectural state.
//
// Execution is single-threaded and synchronous. Concurrent Execute calls
// on overlapping registers are undefined; a caller wanting them must
// supply its own synchronization.
type Architecture struct {
	Verbose bool // Set to enable verbose execution logging.

	bank     *register.Bank
	bindings map[string]*instruction.Binding
	names    []string
}

// Assemble validates the definitions and constructs the architecture.
// Checks run in order, and the first failure wins:
//  1. Build the register bank (duplicate names, unsupported widths).
//  2. Reject duplicate instruction names.
//  3. Confirm every involved register exists in the register set, matched
//     by name and width. A generic instruction declared for reuse must be
//     re-validated against each specific architecture; a same-named
//     register of a different width is invalid here.
//  4. Bind each instruction's behavior to its capability view. The bank
//     lookup re-checks step 3 by name; that redundancy is kept as an
//     invariant check.
func Assemble(regDefs []register.Definition, instDefs []instruction.Definition, behaviors Behaviors) (ar *Architecture, err error) {
	bank, err := register.NewBank(regDefs)
	if err != nil {
		return
	}

	first, second, collide := internal.FindDuplicate(instDefs, instruction.SameName)
	if collide {
		err = &ErrInstructionDuplicate{
			Name:   instDefs[first].Name,
			First:  first,
			Second: second,
		}
		return
	}

	for _, idef := range instDefs {
		for _, rdef := range idef.Registers {
			known := slices.ContainsFunc(regDefs, func(def register.Definition) bool {
				return register.Same(def, rdef)
			})
			if !known {
				err = &ErrRegisterUnresolved{
					Instruction: idef.Name,
					Register:    rdef.Name,
					Width:       rdef.Width,
				}
				return
			}
		}
	}

	ar = &Architecture{
		bank:     bank,
		bindings: make(map[string]*instruction.Binding, len(instDefs)),
	}
	for _, idef := range instDefs {
		var bind *instruction.Binding
		bind, err = instruction.NewBinding(idef, bank, behaviors[idef.Name])
		if err != nil {
			ar = nil
			return
		}
		ar.names = append(ar.names, idef.Name)
		ar.bindings[idef.Name] = bind
	}

	return
}

// Execute runs the named instruction's behavior against its capability
// view. An unknown name fails with ErrInstructionUnknown; a behavior
// failure propagates unchanged. Neither invalidates the architecture.
func (ar *Architecture) Execute(name string) (err error) {
	bind, ok := ar.bindings[name]
	if !ok {
		err = ErrInstructionUnknown(name)
		return
	}

	if ar.Verbose {
		log.Printf("arch: %v", name)
	}

	return bind.Execute()
}

// Binding looks up the executable handle for an instruction by name.
func (ar *Architecture) Binding(name string) (bind *instruction.Binding, ok bool) {
	bind, ok = ar.bindings[name]
	return
}

// Read returns the current bit pattern of a register, bypassing
// instruction behaviors. For test harnesses and single-step debuggers.
func (ar *Architecture) Read(name string) (value uint64, err error) {
	cell, ok := ar.bank.Cell(name)
	if !ok {
		err = ErrRegisterInvalid(name)
		return
	}

	value = cell.Get()
	return
}

// Write stores a value into a register, masked to its width, bypassing
// instruction behaviors. Register values are unspecified until a driver
// writes them.
func (ar *Architecture) Write(name string, value uint64) (err error) {
	cell, ok := ar.bank.Cell(name)
	if !ok {
		err = ErrRegisterInvalid(name)
		return
	}

	cell.Set(value)
	return
}

// Registers iterates the register bank in declaration order.
func (ar *Architecture) Registers() iter.Seq2[string, *register.Cell] {
	return ar.bank.Cells()
}

// Instructions iterates the instruction names in declaration order.
func (ar *Architecture) Instructions() iter.Seq[string] {
	return slices.Values(ar.names)
}

// String returns the current register state as a string.
func (ar *Architecture) String() (text string) {
	for name, cell := range ar.bank.Cells() {
		digits := int(cell.Width()) / 4
		text += fmt.Sprintf("% 8s: %0*X\n", name, digits, cell.Get())
	}

	return
}
