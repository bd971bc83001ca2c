// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package instruction couples a declared register set with a behavior
// function, and scopes that behavior to a capability view over the
// architecture's register bank.
package instruction

import (
	"iter"

	"github.com/ezrec/ucarch/register"
)

// Definition declares a single instruction. It is pure data: validation
// happens when the definition is bound against a bank. Registers is the
// maximum set of registers the behavior may touch, in declared order.
// A definition may be declared once and re-validated against several
// architectures.
type Definition struct {
	Name      string                // Instruction name, unique within a table.
	Registers []register.Definition // Registers the behavior may touch.
}

// Define returns an unvalidated instruction definition.
func Define(name string, regs ...register.Definition) Definition {
	return Definition{Name: name, Registers: regs}
}

// SameName reports whether two definitions collide by name.
func SameName(a, b Definition) bool {
	return a.Name == b.Name
}

// View is a capability view: the only registers it can reach are the ones
// the instruction declared. Cells are borrowed from the owning bank, so
// mutations through the view are mutations of shared architectural state.
// A view is constructed once at bind time and never widened.
type View struct {
	instruction string
	names       []string
	cells       map[string]*register.Cell
}

// Get returns the current value of a declared register.
func (view View) Get(name string) (value uint64, err error) {
	cell, ok := view.cells[name]
	if !ok {
		err = &ErrRegisterUnknown{Instruction: view.instruction, Register: name}
		return
	}

	value = cell.Get()
	return
}

// Set stores a value into a declared register, masked to its width.
func (view View) Set(name string, value uint64) (err error) {
	cell, ok := view.cells[name]
	if !ok {
		err = &ErrRegisterUnknown{Instruction: view.instruction, Register: name}
		return
	}

	cell.Set(value)
	return
}

// Cell looks up a declared register's cell by name.
func (view View) Cell(name string) (cell *register.Cell, ok bool) {
	cell, ok = view.cells[name]
	return
}

// Len returns the number of registers the view exposes.
func (view View) Len() int {
	return len(view.names)
}

// Registers iterates the view's cells in declared order.
func (view View) Registers() iter.Seq2[string, *register.Cell] {
	return func(yield func(name string, cell *register.Cell) bool) {
		for _, name := range view.names {
			if !yield(name, view.cells[name]) {
				return
			}
		}
	}
}

// Behavior implements one instruction against its capability view.
// Behavior failures propagate to the caller unchanged; registers mutated
// before the failure stay mutated, so a behavior needing atomicity must
// provide it itself.
type Behavior func(view View) error

// Binding is an instruction bound to a specific bank's cells, ready to
// execute. Bindings hold non-owning references into the bank; their
// lifetime is bounded by the owning architecture.
type Binding struct {
	Name string

	view     View
	behavior Behavior
}

// NewBinding resolves every declared register of the definition against
// the bank and constructs the capability view. A register absent from the
// bank fails with ErrRegisterUnknown; a nil behavior fails with
// ErrBehaviorMissing.
func NewBinding(def Definition, bank *register.Bank, behavior Behavior) (bind *Binding, err error) {
	if behavior == nil {
		err = ErrBehaviorMissing(def.Name)
		return
	}

	view := View{
		instruction: def.Name,
		cells:       make(map[string]*register.Cell, len(def.Registers)),
	}
	for _, rd := range def.Registers {
		cell, ok := bank.Cell(rd.Name)
		if !ok {
			err = &ErrRegisterUnknown{Instruction: def.Name, Register: rd.Name}
			return
		}
		if _, seen := view.cells[rd.Name]; seen {
			continue
		}
		view.names = append(view.names, rd.Name)
		view.cells[rd.Name] = cell
	}

	bind = &Binding{
		Name:     def.Name,
		view:     view,
		behavior: behavior,
	}

	return
}

// View returns the binding's capability view.
func (bind *Binding) View() View {
	return bind.view
}

// Execute invokes the behavior on the capability view. Any failure from
// the behavior is returned unchanged; no retry, no rollback.
func (bind *Binding) Execute() error {
	return bind.behavior(bind.view)
}
