// Command quill is the interpreter's command-line entry point: a REPL
// when given no arguments, a file runner when given exactly one, and a
// usage error otherwise. Structure adapted from the teacher's cmd/smog
// REPL/run-file split; the `.sg` binary-bytecode compile/disassemble
// subcommands are dropped (no on-disk bytecode format is part of this
// design) and replaced with a single text-only -disasm diagnostic flag.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/kristofer/quill/pkg/chunk"
	"github.com/kristofer/quill/pkg/compiler"
	"github.com/kristofer/quill/pkg/natives"
	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/vm"
)

const version = "0.1.0"

// Exit codes match the spec's external-interface table exactly.
const (
	exitOK           = 0
	exitUsage        = 64
	exitCompileError = 65
	exitRuntimeError = 70
	exitIOFailure    = 74
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("quill", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	disasm := fs.Bool("disasm", false, "print disassembled bytecode instead of running")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *showVersion {
		fmt.Printf("quill version %s\n", version)
		return exitOK
	}

	rest := fs.Args()
	switch len(rest) {
	case 0:
		runREPL()
		return exitOK
	case 1:
		return runFile(rest[0], *disasm)
	default:
		printUsage()
		return exitUsage
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: quill [-disasm] [script]")
	fmt.Fprintln(os.Stderr, "       quill -version")
}

// runFile reads and runs a single source file, returning the process exit
// code the spec names for each outcome.
func runFile(path string, disasmOnly bool) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		return exitIOFailure
	}

	machine := newVM()
	defer machine.Close()

	if disasmOnly {
		fn, err := compiler.Compile(string(source), machine.Strings())
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return exitCompileError
		}
		chunk.Disassemble(os.Stdout, fn.Chunk.(*chunk.Chunk), scriptName(fn))
		return exitOK
	}

	switch machine.Interpret(string(source)) {
	case vm.InterpretCompileError:
		return exitCompileError
	case vm.InterpretRuntimeError:
		return exitRuntimeError
	default:
		return exitOK
	}
}

func scriptName(fn *object.Function) string {
	if fn.Name == "" {
		return "<script>"
	}
	return fn.Name
}

// newVM builds a VM wired the way every entry point here needs it: the
// standard native bridge installed, and QUILL_TRACE=1 opting into the
// instruction tracer.
func newVM() *vm.VM {
	opts := []vm.Option{}
	if os.Getenv("QUILL_TRACE") == "1" {
		opts = append(opts, vm.WithTrace(true))
	}
	machine := vm.New(opts...)
	natives.Install(machine)
	return machine
}

// runREPL reads one line at a time, compiling and running it against a
// persistent VM so globals declared on one line are visible on the next.
func runREPL() {
	fmt.Printf("quill %s\n", version)
	fmt.Println("Ctrl-D to exit.")

	machine := newVM()
	defer machine.Close()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		machine.Interpret(scanner.Text())
	}
}
