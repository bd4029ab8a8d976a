package vm

import (
	"bytes"
	"strings"
	"testing"
)

func run(t *testing.T, src string) (stdout, stderr string, result InterpretResult) {
	t.Helper()
	var out, errOut bytes.Buffer
	machine := New(WithStdout(&out), WithStderr(&errOut))
	defer machine.Close()
	result = machine.Interpret(src)
	return out.String(), errOut.String(), result
}

func TestInterpret_ArithmeticPrecedence(t *testing.T) {
	out, _, result := run(t, "print 1 + 2 * 3;")
	if result != InterpretOK {
		t.Fatalf("expected InterpretOK, got %v", result)
	}
	if out != "7\n" {
		t.Fatalf("expected %q, got %q", "7\n", out)
	}
}

func TestInterpret_StringConcatenation(t *testing.T) {
	out, _, result := run(t, `let a = "foo"; let b = "bar"; print a + b;`)
	if result != InterpretOK {
		t.Fatalf("expected InterpretOK, got %v", result)
	}
	if out != "\"foobar\"\n" {
		t.Fatalf("expected %q, got %q", "\"foobar\"\n", out)
	}
}

func TestInterpret_ForLoopAccumulates(t *testing.T) {
	out, _, result := run(t, `let n = 0; for (let i = 0; i < 5; i = i + 1) { n = n + i; } print n;`)
	if result != InterpretOK {
		t.Fatalf("expected InterpretOK, got %v", result)
	}
	if out != "10\n" {
		t.Fatalf("expected %q, got %q", "10\n", out)
	}
}

func TestInterpret_RecursiveFunction(t *testing.T) {
	out, _, result := run(t, `fn fact(n) { if (n < 2) return 1; return n * fact(n - 1); } print fact(5);`)
	if result != InterpretOK {
		t.Fatalf("expected InterpretOK, got %v", result)
	}
	if out != "120\n" {
		t.Fatalf("expected %q, got %q", "120\n", out)
	}
}

func TestInterpret_UndefinedVariableIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, `print x;`)
	if result != InterpretRuntimeError {
		t.Fatalf("expected InterpretRuntimeError, got %v", result)
	}
	if !strings.Contains(errOut, "Undefined variable 'x'") {
		t.Fatalf("expected undefined variable message, got %q", errOut)
	}
}

func TestInterpret_TypeMismatchIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, `1 + "a";`)
	if result != InterpretRuntimeError {
		t.Fatalf("expected InterpretRuntimeError, got %v", result)
	}
	if !strings.Contains(errOut, "Operands must be two strings or two numbers") {
		t.Fatalf("unexpected message: %q", errOut)
	}
}

func TestInterpret_IfElseBothBranches(t *testing.T) {
	out, _, _ := run(t, `if (1 < 2) { print "yes"; } else { print "no"; }`)
	if out != "\"yes\"\n" {
		t.Fatalf("expected yes, got %q", out)
	}
	out, _, _ = run(t, `if (1 > 2) { print "yes"; } else { print "no"; }`)
	if out != "\"no\"\n" {
		t.Fatalf("expected no, got %q", out)
	}
}

func TestInterpret_AndOrShortCircuit(t *testing.T) {
	out, _, _ := run(t, `print false and (1/0 == 1);`)
	if out != "false\n" {
		t.Fatalf("expected and to short-circuit to false, got %q", out)
	}
	out, _, _ = run(t, `print true or (1/0 == 1);`)
	if out != "true\n" {
		t.Fatalf("expected or to short-circuit to true, got %q", out)
	}
}

func TestInterpret_WhileLoop(t *testing.T) {
	out, _, _ := run(t, `let i = 0; while (i < 3) { print i; i = i + 1; }`)
	if out != "0\n1\n2\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

// TestInterpret_ZeroIsFalsey pins the "0 is falsey, non-zero is truthy"
// resolution: an if/while condition of a bare 0 must behave exactly like
// a condition of false, and a nonzero number must behave like true.
func TestInterpret_ZeroIsFalsey(t *testing.T) {
	out, _, _ := run(t, `if (0) { print "truthy"; } else { print "falsey"; }`)
	if out != "\"falsey\"\n" {
		t.Fatalf("expected 0 to be falsey, got %q", out)
	}

	out, _, _ = run(t, `if (1) { print "truthy"; } else { print "falsey"; }`)
	if out != "\"truthy\"\n" {
		t.Fatalf("expected a nonzero number to be truthy, got %q", out)
	}

	out, _, _ = run(t, `let n = 0; while (n) { n = n + 1; } print n;`)
	if out != "0\n" {
		t.Fatalf("expected while(0) to never loop, got %q", out)
	}
}

func TestInterpret_GlobalAssignmentToUndeclaredIsError(t *testing.T) {
	_, errOut, result := run(t, `x = 1;`)
	if result != InterpretRuntimeError {
		t.Fatalf("expected runtime error, got %v", result)
	}
	if !strings.Contains(errOut, "Undefined variable 'x'") {
		t.Fatalf("unexpected message: %q", errOut)
	}
}

func TestInterpret_NonCallableCallIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, `let a = 1; a();`)
	if result != InterpretRuntimeError {
		t.Fatalf("expected runtime error, got %v", result)
	}
	if !strings.Contains(errOut, "Can only call functions") {
		t.Fatalf("unexpected message: %q", errOut)
	}
}

func TestInterpret_ArityMismatchIsRuntimeError(t *testing.T) {
	_, errOut, result := run(t, `fn f(a, b) { return a + b; } f(1);`)
	if result != InterpretRuntimeError {
		t.Fatalf("expected runtime error, got %v", result)
	}
	if !strings.Contains(errOut, "Expected 2 arguments but got 1") {
		t.Fatalf("unexpected message: %q", errOut)
	}
}

func TestInterpret_DeepRecursionWithinFrameBoundSucceeds(t *testing.T) {
	_, errOut, result := run(t, `
		fn depth(n) { if (n == 0) return 0; return depth(n - 1); }
		print depth(60);
	`)
	if result != InterpretOK {
		t.Fatalf("expected InterpretOK, got %v, stderr=%q", result, errOut)
	}
}

func TestInterpret_RecursionPastFrameBoundIsStackOverflow(t *testing.T) {
	_, errOut, result := run(t, `
		fn loop(n) { return loop(n + 1); }
		print loop(0);
	`)
	if result != InterpretRuntimeError {
		t.Fatalf("expected runtime error, got %v", result)
	}
	if !strings.Contains(errOut, "Stack overflow") {
		t.Fatalf("unexpected message: %q", errOut)
	}
}

func TestInterpret_CompileErrorReported(t *testing.T) {
	_, errOut, result := run(t, `let a = ;`)
	if result != InterpretCompileError {
		t.Fatalf("expected compile error, got %v", result)
	}
	if !strings.Contains(errOut, "Error") {
		t.Fatalf("expected a formatted compile error, got %q", errOut)
	}
}

func TestInterpret_StackTraceNamesEachFrame(t *testing.T) {
	_, errOut, result := run(t, `
		fn inner() { return 1 + "x"; }
		fn outer() { return inner(); }
		outer();
	`)
	if result != InterpretRuntimeError {
		t.Fatalf("expected runtime error, got %v", result)
	}
	if !strings.Contains(errOut, "in inner()") || !strings.Contains(errOut, "in outer()") || !strings.Contains(errOut, "in script") {
		t.Fatalf("expected a full stack trace, got %q", errOut)
	}
}
