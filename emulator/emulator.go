// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator is a single-step program harness for an assembled
// architecture. A program is a flat list of instruction names; the
// emulator dispatches them in order, one per tick, and reports failures
// with their source line. Halt, trap, and retry policy belongs to the
// caller.
package emulator

import (
	"bufio"
	"io"
	"iter"
	"log"
	"strings"

	"github.com/ezrec/ucarch/arch"
)

// Op is a single program step: one instruction name with the source line
// it came from.
type Op struct {
	LineNo int    // Source line number, starting at 1.
	Name   string // Instruction name to execute.
}

// Program is a parsed instruction sequence.
type Program struct {
	Ops []Op
}

// ParseProgram reads a program listing. Instruction names are separated
// by newlines or semicolons; '#' starts a comment; blank lines are
// skipped. Names are not validated here: an unknown name surfaces from
// the architecture at execution time.
func ParseProgram(in io.Reader) (prog *Program, err error) {
	prog = &Program{}

	lineno := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		lineno++
		line := scanner.Text()
		if at := strings.IndexByte(line, '#'); at >= 0 {
			line = line[:at]
		}
		for _, word := range strings.Split(line, ";") {
			name := strings.TrimSpace(word)
			if name == "" {
				continue
			}
			prog.Ops = append(prog.Ops, Op{LineNo: lineno, Name: name})
		}
	}
	err = scanner.Err()
	if err != nil {
		prog = nil
		return
	}

	return
}

// Names iterates the program's instruction names in order.
func (prog *Program) Names() iter.Seq2[int, string] {
	return func(yield func(lineno int, name string) bool) {
		for _, op := range prog.Ops {
			if !yield(op.LineNo, op.Name) {
				return
			}
		}
	}
}

// Emulator steps a program against an architecture.
type Emulator struct {
	Verbose bool               // If set, enables verbose logging.
	Arch    *arch.Architecture // The architecture under simulation.
	Program *Program           // The program listing to run.

	pc    int
	ticks int
}

// NewEmulator creates an emulator for an architecture and program.
func NewEmulator(ar *arch.Architecture, prog *Program) (emu *Emulator) {
	emu = &Emulator{
		Arch:    ar,
		Program: prog,
	}

	return
}

// Reset rewinds the program to its first instruction and zeros the tick
// counter. Register state is untouched: initialization is the driver's
// responsibility, and initial values are unspecified until written.
func (emu *Emulator) Reset() {
	if emu.Verbose {
		log.Printf("emulator: reset")
	}

	emu.pc = 0
	emu.ticks = 0
}

// LineNo returns the source line of the next instruction to execute, or
// zero past the end of the program.
func (emu *Emulator) LineNo() int {
	if emu.Program == nil || emu.pc >= len(emu.Program.Ops) {
		return 0
	}

	return emu.Program.Ops[emu.pc].LineNo
}

// Step executes the next instruction of the program. Returns done when
// the program is exhausted. Failures wrap as ErrRuntime with the source
// line; the emulator stays positioned after the failed instruction, so a
// caller may log and continue.
func (emu *Emulator) Step() (done bool, err error) {
	if emu.Program == nil || emu.pc >= len(emu.Program.Ops) {
		done = true
		return
	}

	op := emu.Program.Ops[emu.pc]
	emu.pc++
	emu.ticks++

	if emu.Verbose {
		log.Printf("%3d: %v", op.LineNo, op.Name)
	}

	err = emu.Arch.Execute(op.Name)
	if err != nil {
		err = &ErrRuntime{LineNo: op.LineNo, Err: err}
		return
	}

	return
}

// Run steps the program to completion, stopping at the first failure.
func (emu *Emulator) Run() (err error) {
	for {
		var done bool
		done, err = emu.Step()
		if err != nil || done {
			return
		}
	}
}

// Ticks returns the number of instructions executed since the last reset.
func (emu *Emulator) Ticks() int {
	return emu.ticks
}
