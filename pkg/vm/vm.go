package vm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kristofer/quill/pkg/chunk"
	"github.com/kristofer/quill/pkg/compiler"
	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/table"
)

// StackMax and FramesMax are the two hard bounds named in the data model:
// 64 call frames of up to 256 operand-stack slots each.
const (
	FramesMax = 64
	StackMax  = FramesMax * 256
)

// InterpretResult is Interpret's outcome, mapped to the CLI's process exit
// codes one layer up (see cmd/quill).
type InterpretResult int

const (
	InterpretOK InterpretResult = iota
	InterpretCompileError
	InterpretRuntimeError
)

// CallFrame is one function activation: the function being executed, its
// instruction pointer into that function's chunk, and the base index into
// the VM's shared operand stack where its local slots begin.
type CallFrame struct {
	function  *object.Function
	ip        int
	slotsBase int
}

// VM is the bytecode interpreter: a fixed-size operand stack, a fixed-size
// call-frame stack, the globals table, the string-interning table, and the
// head of the intrusive heap-object list. Unlike the teacher's module-level
// VM singleton, this is an explicit value so a host program can run more
// than one independent interpreter in a process.
type VM struct {
	stack      [StackMax]object.Value
	stackTop   int
	frames     [FramesMax]CallFrame
	frameCount int

	globals *table.Table
	strings *table.Table
	objects object.Obj

	stdout io.Writer
	stderr io.Writer
	trace  bool
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithStdout redirects print-statement output away from os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(vm *VM) { vm.stdout = w }
}

// WithStderr redirects diagnostic/error output away from os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(vm *VM) { vm.stderr = w }
}

// WithTrace enables the opt-in instruction tracer (normally driven by the
// QUILL_TRACE environment variable; see cmd/quill).
func WithTrace(enabled bool) Option {
	return func(vm *VM) { vm.trace = enabled }
}

// New creates a VM ready to interpret source. Its globals and strings
// tables start empty; callers that want the standard native-function
// bridge should follow with natives.Install(vm).
func New(opts ...Option) *VM {
	vm := &VM{
		globals: table.New(),
		strings: table.New(),
		stdout:  os.Stdout,
		stderr:  os.Stderr,
	}
	for _, opt := range opts {
		opt(vm)
	}
	return vm
}

// Globals exposes the VM's global-variable table so callers (notably
// pkg/natives) can install builtins before the first Interpret call.
func (vm *VM) Globals() *table.Table { return vm.globals }

// Strings exposes the VM's string-interning table.
func (vm *VM) Strings() *table.Table { return vm.strings }

// Intern returns the VM-wide canonical *ObjString for s, allocating and
// registering it in the heap-object list the first time s is seen.
func (vm *VM) Intern(s string) *object.ObjString {
	hash := object.HashString(s)
	if existing := vm.strings.FindString(s, hash); existing != nil {
		return existing
	}
	str := table.Intern(vm.strings, s)
	vm.adopt(str)
	return str
}

// adopt links o into the VM's intrusive object list if it isn't there
// already. Objects are never freed individually; Close releases the whole
// list at once and lets Go's garbage collector reclaim the rest.
func (vm *VM) adopt(o object.Obj) {
	for cur := vm.objects; cur != nil; cur = cur.Next() {
		if cur == o {
			return
		}
	}
	o.SetNext(vm.objects)
	vm.objects = o
}

// Close tears down the VM's heap-object list. There is no incremental
// collection in this design (see the concurrency/resource model); this is
// the bulk-teardown-on-shutdown the spec calls for.
func (vm *VM) Close() {
	vm.objects = nil
}

// Interpret compiles and runs source, writing print output to vm's stdout
// and any diagnostics to its stderr.
func (vm *VM) Interpret(source string) InterpretResult {
	fn, err := compiler.Compile(source, vm.strings)
	if err != nil {
		fmt.Fprintln(vm.stderr, err)
		return InterpretCompileError
	}
	vm.registerCompiledObjects(fn)

	vm.push(object.FromObj(fn))
	vm.callFunction(fn, 0)

	if err := vm.run(); err != nil {
		fmt.Fprintln(vm.stderr, err)
		return InterpretRuntimeError
	}
	return InterpretOK
}

// registerCompiledObjects walks fn and every nested function/string
// constant it transitively references, adopting each into the object list
// exactly once.
func (vm *VM) registerCompiledObjects(fn *object.Function) {
	visited := map[object.Obj]bool{}
	var walk func(f *object.Function)
	walk = func(f *object.Function) {
		if visited[f] {
			return
		}
		visited[f] = true
		vm.adopt(f)

		ch := f.Chunk.(*chunk.Chunk)
		for _, v := range ch.Constants {
			if !v.IsObject() {
				continue
			}
			if nested, ok := v.Obj.(*object.Function); ok {
				walk(nested)
				continue
			}
			if !visited[v.Obj] {
				visited[v.Obj] = true
				vm.adopt(v.Obj)
			}
		}
	}
	walk(fn)
}

func (vm *VM) push(v object.Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() object.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) object.Value {
	return vm.stack[vm.stackTop-1-distance]
}

func (vm *VM) currentFrame() *CallFrame {
	return &vm.frames[vm.frameCount-1]
}

func (vm *VM) readByte(f *CallFrame) byte {
	b := f.function.Chunk.(*chunk.Chunk).Code[f.ip]
	f.ip++
	return b
}

func (vm *VM) readShort(f *CallFrame) int {
	hi := vm.readByte(f)
	lo := vm.readByte(f)
	return int(hi)<<8 | int(lo)
}

func (vm *VM) readConstant(f *CallFrame) object.Value {
	idx := vm.readByte(f)
	return f.function.Chunk.(*chunk.Chunk).Constants[idx]
}

// run is the dispatch loop: read one opcode from the current frame,
// advance its instruction pointer, and execute it. It returns on OP_RETURN
// from the outermost frame or on the first runtime error.
func (vm *VM) run() error {
	frame := vm.currentFrame()

	for {
		if vm.trace {
			vm.traceInstruction(frame)
		}

		op := chunk.OpCode(vm.readByte(frame))
		switch op {
		case chunk.OpConstant:
			vm.push(vm.readConstant(frame))

		case chunk.OpNull:
			vm.push(object.Null)
		case chunk.OpTrue:
			vm.push(object.Bool(true))
		case chunk.OpFalse:
			vm.push(object.Bool(false))
		case chunk.OpPop:
			vm.pop()

		case chunk.OpGetLocal:
			slot := vm.readByte(frame)
			vm.push(vm.stack[frame.slotsBase+int(slot)])
		case chunk.OpSetLocal:
			slot := vm.readByte(frame)
			vm.stack[frame.slotsBase+int(slot)] = vm.peek(0)

		case chunk.OpGetGlobal:
			name := vm.readConstant(frame).AsString()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(v)
		case chunk.OpDefineGlobal:
			name := vm.readConstant(frame).AsString()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case chunk.OpSetGlobal:
			name := vm.readConstant(frame).AsString()
			if _, ok := vm.globals.Get(name); !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.globals.Set(name, vm.peek(0))

		case chunk.OpEqual:
			b := vm.pop()
			a := vm.pop()
			vm.push(object.Bool(object.Equals(a, b)))
		case chunk.OpGreater:
			if err := vm.numericBinary(frame, func(a, b float64) object.Value { return object.Bool(a > b) }); err != nil {
				return err
			}
		case chunk.OpLess:
			if err := vm.numericBinary(frame, func(a, b float64) object.Value { return object.Bool(a < b) }); err != nil {
				return err
			}

		case chunk.OpAdd:
			if err := vm.add(frame); err != nil {
				return err
			}
		case chunk.OpSubtract:
			if err := vm.numericBinary(frame, func(a, b float64) object.Value { return object.Number(a - b) }); err != nil {
				return err
			}
		case chunk.OpMultiply:
			if err := vm.numericBinary(frame, func(a, b float64) object.Value { return object.Number(a * b) }); err != nil {
				return err
			}
		case chunk.OpDivide:
			if err := vm.numericBinary(frame, func(a, b float64) object.Value { return object.Number(a / b) }); err != nil {
				return err
			}

		case chunk.OpNot:
			vm.push(object.Bool(!vm.pop().IsTruthy()))
		case chunk.OpNegate:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(object.Number(-vm.pop().Number))

		case chunk.OpPrint:
			fmt.Fprintln(vm.stdout, object.Print(vm.pop()))

		case chunk.OpJump:
			offset := vm.readShort(frame)
			frame.ip += offset
		case chunk.OpJumpIfFalse:
			offset := vm.readShort(frame)
			if !vm.peek(0).IsTruthy() {
				frame.ip += offset
			}
		case chunk.OpLoop:
			offset := vm.readShort(frame)
			frame.ip -= offset

		case chunk.OpCall:
			argCount := int(vm.readByte(frame))
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}
			frame = vm.currentFrame()

		case chunk.OpReturn:
			result := vm.pop()
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop()
				return nil
			}
			vm.stackTop = frame.slotsBase
			vm.push(result)
			frame = vm.currentFrame()

		default:
			return vm.runtimeError("Unknown opcode %d.", op)
		}
	}
}

func (vm *VM) numericBinary(frame *CallFrame, fn func(a, b float64) object.Value) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().Number
	a := vm.pop().Number
	vm.push(fn(a, b))
	return nil
}

// add implements OP_ADD's two valid cases (number+number, string+string)
// per the spec; any other combination is a runtime error.
func (vm *VM) add(frame *CallFrame) error {
	b := vm.peek(0)
	a := vm.peek(1)

	switch {
	case a.IsNumber() && b.IsNumber():
		vm.pop()
		vm.pop()
		vm.push(object.Number(a.Number + b.Number))
	case a.IsString() && b.IsString():
		vm.pop()
		vm.pop()
		var sb strings.Builder
		sb.WriteString(a.AsString().Chars)
		sb.WriteString(b.AsString().Chars)
		vm.push(object.FromObj(vm.Intern(sb.String())))
	default:
		return vm.runtimeError("Operands must be two strings or two numbers.")
	}
	return nil
}

// callValue dispatches OP_CALL's callee: an interpreted Function pushes a
// new CallFrame, a Native is invoked directly and its result replaces the
// callee+arguments on the stack. Anything else is a runtime error.
func (vm *VM) callValue(callee object.Value, argCount int) error {
	if !callee.IsObject() {
		return vm.runtimeError("Can only call functions.")
	}
	switch fn := callee.Obj.(type) {
	case *object.Function:
		return vm.callFunction(fn, argCount)
	case *object.Native:
		args := vm.stack[vm.stackTop-argCount : vm.stackTop]
		result, errMsg := fn.Fn(args)
		if errMsg != "" {
			return vm.runtimeError("%s", errMsg)
		}
		vm.stackTop -= argCount + 1
		vm.push(result)
		return nil
	default:
		return vm.runtimeError("Can only call functions.")
	}
}

func (vm *VM) callFunction(fn *object.Function, argCount int) error {
	if argCount != fn.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", fn.Arity, argCount)
	}
	if vm.frameCount == FramesMax {
		return vm.runtimeError("Stack overflow.")
	}

	frame := &vm.frames[vm.frameCount]
	frame.function = fn
	frame.ip = 0
	frame.slotsBase = vm.stackTop - argCount - 1
	vm.frameCount++
	return nil
}

// runtimeError builds a RuntimeError carrying a full stack trace and
// resets the operand stack, per the spec's "operand stack is reset"
// recovery rule.
func (vm *VM) runtimeError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)

	trace := make([]StackFrame, 0, vm.frameCount)
	for i := 0; i < vm.frameCount; i++ {
		f := &vm.frames[i]
		line := 0
		ch := f.function.Chunk.(*chunk.Chunk)
		if f.ip-1 >= 0 && f.ip-1 < len(ch.Lines) {
			line = ch.Lines[f.ip-1]
		}
		trace = append(trace, StackFrame{Name: f.function.Name, Line: line})
	}

	vm.stackTop = 0
	vm.frameCount = 0
	return newRuntimeError(msg, trace)
}
