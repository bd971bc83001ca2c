// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package register models the named, fixed-width storage cells of a
// simulated architecture, and the duplicate-free bank that owns them.
package register

import (
	"iter"

	"github.com/ezrec/ucarch/internal"
)

// Definition declares a single register. It is pure data: no validation
// happens until a bank is built from it. Identity is Name.
type Definition struct {
	Name  string // Register name, unique within a bank.
	Width Width  // Storage width in bits.
}

// Define returns an unvalidated register definition.
func Define(name string, width Width) Definition {
	return Definition{Name: name, Width: width}
}

// SameName reports whether two definitions collide by name.
func SameName(a, b Definition) bool {
	return a.Name == b.Name
}

// Same reports whether two definitions are fully equal, by name and width.
// Used when a generic instruction is re-validated against a specific
// architecture: a same-named register of a different width does not match.
func Same(a, b Definition) bool {
	return a.Name == b.Name && a.Width == b.Width
}

// Cell is the runtime storage for one register. Cell values are unspecified
// until written: drivers must initialize registers they rely on.
type Cell struct {
	width Width
	value uint64
}

// Width returns the declared width of the cell.
func (cell *Cell) Width() Width {
	return cell.width
}

// Get returns the current bit pattern of the cell.
func (cell *Cell) Get() uint64 {
	return cell.value
}

// Set stores a value into the cell, masked to the cell's width.
func (cell *Cell) Set(value uint64) {
	cell.value = value & cell.width.Mask()
}

// Bank is the complete register set of one architecture. Names are pairwise
// distinct; declaration order is retained for diagnostics only.
type Bank struct {
	names []string
	cells map[string]*Cell
}

// NewBank materializes one cell per definition, keyed by name.
// Duplicate names fail with the first colliding pair found in row-major
// scan order; unsupported widths fail with ErrWidth.
func NewBank(defs []Definition) (bank *Bank, err error) {
	first, second, collide := internal.FindDuplicate(defs, SameName)
	if collide {
		err = &ErrRegisterDuplicate{
			Name:   defs[first].Name,
			First:  first,
			Second: second,
		}
		return
	}

	bank = &Bank{
		cells: make(map[string]*Cell, len(defs)),
	}
	for _, def := range defs {
		if !def.Width.Valid() {
			bank = nil
			err = ErrWidth(def.Width)
			return
		}
		bank.names = append(bank.names, def.Name)
		bank.cells[def.Name] = &Cell{width: def.Width}
	}

	return
}

// Cell looks up a register's cell by name.
func (bank *Bank) Cell(name string) (cell *Cell, ok bool) {
	cell, ok = bank.cells[name]
	return
}

// Len returns the number of registers in the bank.
func (bank *Bank) Len() int {
	return len(bank.names)
}

// Cells iterates the bank in declaration order.
func (bank *Bank) Cells() iter.Seq2[string, *Cell] {
	return func(yield func(name string, cell *Cell) bool) {
		for _, name := range bank.names {
			if !yield(name, bank.cells[name]) {
				return
			}
		}
	}
}
