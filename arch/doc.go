// Package arch assembles register and instruction definitions into a
// validated, executable architecture model.
//
// Assemble is the sole validating entry point: it builds the register
// bank, rejects duplicate register and instruction names, confirms that
// every register an instruction involves exists in the architecture
// (matched by name and width), and binds each instruction's behavior to a
// capability view over exactly its declared registers. The first failure
// aborts assembly; no partial architecture is ever returned.
//
// An assembled Architecture is structurally closed: registers and
// instructions can no longer be added or removed, and the assembly
// invariants are never re-checked. An external driver supplies behaviors,
// initializes register state, and drives execution by instruction name;
// fetch, decode, memory, and peripherals are the driver's concern.
package arch
