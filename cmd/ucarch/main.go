// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/davecgh/go-spew/spew"

	"github.com/ezrec/ucarch/emulator"
	"github.com/ezrec/ucarch/script"
)

func main() {
	var archfile string
	var progfile string
	var dump bool
	var verbose bool

	flag.StringVar(&archfile, "a", "", "architecture definition (.star file)")
	flag.StringVar(&progfile, "p", "-", "program listing to run")
	flag.BoolVar(&dump, "dump", false, "dump the loaded definitions, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if archfile == "" {
		log.Fatalf("%v: no architecture definition (-a)", os.Args[0])
	}

	def, err := script.Load(archfile, nil)
	if err != nil {
		log.Fatalf("%v: %v", archfile, err)
	}

	if dump {
		spew.Fdump(os.Stdout, def.Registers, def.Instructions)
		return
	}

	ar, err := def.Assemble()
	if err != nil {
		log.Fatalf("%v: %v", archfile, err)
	}
	ar.Verbose = verbose

	var prog *emulator.Program
	if progfile == "-" {
		prog, err = emulator.ParseProgram(os.Stdin)
	} else {
		var inf *os.File
		inf, err = os.Open(progfile)
		if err != nil {
			log.Fatalf("%v: %v", progfile, err)
		}
		defer inf.Close()
		prog, err = emulator.ParseProgram(inf)
	}
	if err != nil {
		log.Fatalf("%v: %v", progfile, err)
	}

	emu := emulator.NewEmulator(ar, prog)
	emu.Verbose = verbose
	emu.Reset()

	if err = emu.Run(); err != nil {
		log.Fatal(err)
	}

	fmt.Print(ar.String())
}
