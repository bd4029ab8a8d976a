// Package natives installs the host's native-function bridge into a VM's
// globals table: a set of Go-implemented callables the bytecode can invoke
// through the ordinary CALL opcode exactly as if they were compiled
// functions. Adapted wholesale from the teacher's pkg/vm/primitives.go,
// kept to the subset whose arguments and results are plain Number/Bool/
// String values — this language has no array/map Value variant, so the
// teacher's JSON and zip-archive primitives (which need a compound result)
// have no home here and are dropped (see DESIGN.md).
package natives

import (
	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/vm"
)

// Install registers every native in builtins' table (builtins.go) into
// host's globals table.
// Call it once, right after constructing a VM and before the first
// Interpret call.
func Install(host *vm.VM) {
	for name, fn := range builtins(host) {
		native := &object.Native{Name: name, Fn: fn}
		host.Globals().Set(host.Intern(name), object.FromObj(native))
	}
}
