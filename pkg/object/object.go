package object

import (
	"fmt"
	"hash/fnv"
)

// ObjKind discriminates the concrete heap object type behind an Obj
// interface value.
type ObjKind int

const (
	ObjKindString ObjKind = iota
	ObjKindFunction
	ObjKindNative
)

func (k ObjKind) String() string {
	switch k {
	case ObjKindString:
		return "STRING"
	case ObjKindFunction:
		return "FUNCTION"
	case ObjKindNative:
		return "NATIVE"
	default:
		return "UNKNOWN"
	}
}

// Obj is the interface every heap-allocated object implements. The teacher's
// C lineage gets polymorphism from a Kind tag plus pointer casts; a Go
// interface gives the same dispatch without the casts, and Next gives the
// VM an intrusive singly linked list of every object it has ever allocated
// (used only for stats/teardown bookkeeping, never for GC — see Non-goals).
type Obj interface {
	Kind() ObjKind
	String() string
	Next() Obj
	SetNext(Obj)
}

// objHeader is embedded in every concrete object and carries the intrusive
// list link used by the VM's teardown sweep (see pkg/vm's adopt and Close).
type objHeader struct {
	nextObj Obj
}

func (h *objHeader) Next() Obj      { return h.nextObj }
func (h *objHeader) SetNext(o Obj)  { h.nextObj = o }

// ObjString is an interned, immutable string. Two ObjString values with the
// same contents are only ever allocated once per VM (see pkg/table's
// interning table), so equality and hashing both reduce to pointer identity
// after creation.
type ObjString struct {
	objHeader
	Chars string
	Hash  uint32
}

func (s *ObjString) Kind() ObjKind { return ObjKindString }

// String renders the string the way print/the REPL display it: the raw
// characters wrapped in double quotes. Code that wants the bare contents
// (string concatenation, map/identifier lookups, error messages) reads
// Chars directly instead of calling this.
func (s *ObjString) String() string { return `"` + s.Chars + `"` }

// HashString computes the FNV-1a 32-bit hash used to place strings in the
// interning table and in the globals table.
func HashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// NewString allocates a fresh ObjString. Callers normally go through a
// VM-owned interning table (Intern in pkg/table) rather than calling
// this directly, so that equal contents share one allocation.
func NewString(chars string) *ObjString {
	return &ObjString{Chars: chars, Hash: HashString(chars)}
}

// Function is the compiled form of a fn declaration or the implicit
// top-level script function: a name, an arity, and the instruction block
// that implements its body. Chunk is declared as any here to avoid an
// import cycle between pkg/object and pkg/chunk (the compiler, which
// imports both, does the concrete wiring); see pkg/chunk.Chunk.
type Function struct {
	objHeader
	Name     string // empty for the top-level script
	Arity    int
	Chunk    any
	UpvalueN int
}

func (f *Function) Kind() ObjKind { return ObjKindFunction }

func (f *Function) String() string {
	if f.Name == "" {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name)
}

// NativeFn is the Go function signature every native callable implements:
// given the VM's argument slice, return a result Value or an error message.
// A non-empty error string triggers the same runtime-error path as a
// regular bytecode failure (see pkg/vm's RuntimeError).
type NativeFn func(args []Value) (Value, string)

// Native wraps a Go-implemented builtin so it can live in a Value and be
// called through the same CALL opcode as an interpreted function.
type Native struct {
	objHeader
	Name string
	Fn   NativeFn
}

func (n *Native) Kind() ObjKind  { return ObjKindNative }
func (n *Native) String() string { return "<native fn>" }
