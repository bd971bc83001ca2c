// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package script loads architecture definitions from Starlark sources.
//
// A script declares registers and instructions with two builtins:
//
//	ra = register("RA", 8)
//	rb = register("RB", 8)
//
//	def swap(regs):
//	    regs["RA"], regs["RB"] = regs["RB"], regs["RA"]
//
//	instruction("SWAP", [ra, rb], swap)
//
// A behavior function receives a dict holding the declared registers'
// current values; mutations to the dict are written back through the
// instruction's capability view, masked to each register's width. Keys
// outside the declared set fail the instruction at execution time.
package script

import (
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/ucarch/arch"
	"github.com/ezrec/ucarch/instruction"
	"github.com/ezrec/ucarch/register"
)

// Definition collects the declarations made by one script, ready to pass
// to arch.Assemble.
type Definition struct {
	Registers    []register.Definition
	Instructions []instruction.Definition
	Behaviors    arch.Behaviors

	byName map[string]register.Definition
}

// Load evaluates a Starlark architecture description. The src parameter
// follows starlark.ExecFileOptions: nil to read filename, or the source
// text as a string or byte slice.
func Load(filename string, src any) (def *Definition, err error) {
	def = &Definition{
		Behaviors: arch.Behaviors{},
		byName:    map[string]register.Definition{},
	}

	thread := starlark.Thread{Name: "ucarch"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{
		"register":    starlark.NewBuiltin("register", def.stRegister),
		"instruction": starlark.NewBuiltin("instruction", def.stInstruction),
	}

	_, err = starlark.ExecFileOptions(&opts, &thread, filename, src, pred)
	if err != nil {
		def = nil
		return
	}

	return
}

// Assemble validates the loaded definitions into an architecture.
func (def *Definition) Assemble() (*arch.Architecture, error) {
	return arch.Assemble(def.Registers, def.Instructions, def.Behaviors)
}

// stRegister implements the register(name, width) builtin. It records
// pure data; width and duplicate validation happen at Assemble.
func (def *Definition) stRegister(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var width int

	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "name", &name, "width", &width)
	if err != nil {
		return nil, err
	}

	rdef := register.Define(name, register.Width(width))
	def.Registers = append(def.Registers, rdef)
	def.byName[name] = rdef

	return starlark.String(name), nil
}

// stInstruction implements the instruction(name, registers, behavior)
// builtin. Register entries are the names returned by register(); a name
// never declared fails the load.
func (def *Definition) stInstruction(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var name string
	var regs *starlark.List
	var behavior starlark.Callable

	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"name", &name, "registers", &regs, "behavior", &behavior)
	if err != nil {
		return nil, err
	}

	var involved []register.Definition
	for entry := range regs.Elements() {
		rname, ok := starlark.AsString(entry)
		if !ok {
			return nil, ErrScriptRegister(entry.String())
		}
		rdef, ok := def.byName[rname]
		if !ok {
			return nil, ErrScriptRegister(rname)
		}
		involved = append(involved, rdef)
	}

	def.Instructions = append(def.Instructions, instruction.Define(name, involved...))
	def.Behaviors[name] = behaviorFor(name, behavior)

	return starlark.None, nil
}

// behaviorFor wraps a Starlark callable as an instruction behavior. Each
// call seeds a fresh dict from the capability view, invokes the callable,
// and writes the dict back through the view.
func behaviorFor(name string, callable starlark.Callable) instruction.Behavior {
	return func(view instruction.View) (err error) {
		regs := starlark.NewDict(view.Len())
		for rname, cell := range view.Registers() {
			err = regs.SetKey(starlark.String(rname), starlark.MakeUint64(cell.Get()))
			if err != nil {
				return
			}
		}

		thread := starlark.Thread{Name: name}
		_, err = starlark.Call(&thread, callable, starlark.Tuple{regs}, nil)
		if err != nil {
			return
		}

		for _, item := range regs.Items() {
			rname, ok := starlark.AsString(item[0])
			if !ok {
				err = &ErrScriptValue{
					Instruction: name,
					Register:    item[0].String(),
					Value:       item[1].String(),
				}
				return
			}
			var value uint64
			value, err = uintValue(name, rname, item[1])
			if err != nil {
				return
			}
			err = view.Set(rname, value)
			if err != nil {
				return
			}
		}

		return
	}
}

// uintValue converts a Starlark register value to a bit pattern. Negative
// values wrap in two's complement; the view masks to the register width.
func uintValue(inst string, rname string, value starlark.Value) (uint64, error) {
	st, ok := value.(starlark.Int)
	if !ok {
		return 0, &ErrScriptValue{Instruction: inst, Register: rname, Value: value.String()}
	}

	if u64, ok := st.Uint64(); ok {
		return u64, nil
	}
	if i64, ok := st.Int64(); ok {
		return uint64(i64), nil
	}

	return 0, &ErrScriptValue{Instruction: inst, Register: rname, Value: value.String()}
}
