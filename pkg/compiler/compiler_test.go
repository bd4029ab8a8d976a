package compiler

import (
	"testing"

	"github.com/kristofer/quill/pkg/chunk"
	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/table"
)

func compile(t *testing.T, src string) *object.Function {
	t.Helper()
	fn, err := Compile(src, table.New())
	if err != nil {
		t.Fatalf("Compile(%q) returned error: %v", src, err)
	}
	return fn
}

func compileExpectError(t *testing.T, src string) error {
	t.Helper()
	_, err := Compile(src, table.New())
	if err == nil {
		t.Fatalf("Compile(%q): expected error, got none", src)
	}
	return err
}

func code(fn *object.Function) []byte {
	return fn.Chunk.(*chunk.Chunk).Code
}

func TestCompile_NumberLiteralEmitsConstant(t *testing.T) {
	fn := compile(t, "1;")
	c := code(fn)
	if len(c) < 3 || chunk.OpCode(c[0]) != chunk.OpConstant || chunk.OpCode(c[2]) != chunk.OpPop {
		t.Fatalf("unexpected code: %v", c)
	}
}

func TestCompile_PrintStatement(t *testing.T) {
	fn := compile(t, `print 1 + 2 * 3;`)
	c := code(fn)
	last := chunk.OpCode(c[len(c)-3])
	if last != chunk.OpPrint {
		t.Fatalf("expected OP_PRINT before the implicit return, got %v", last)
	}
}

func TestCompile_LetGlobalEmitsDefineGlobal(t *testing.T) {
	fn := compile(t, `let a = 1;`)
	c := code(fn)
	found := false
	for i := 0; i < len(c); i++ {
		if chunk.OpCode(c[i]) == chunk.OpDefineGlobal {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected OP_DEFINE_GLOBAL in %v", c)
	}
}

func TestCompile_LocalUsesGetSetLocalNotGlobal(t *testing.T) {
	fn := compile(t, `{ let a = 1; print a; }`)
	c := code(fn)
	for i := 0; i < len(c); i++ {
		if chunk.OpCode(c[i]) == chunk.OpDefineGlobal || chunk.OpCode(c[i]) == chunk.OpGetGlobal {
			t.Fatalf("expected no global ops for a block-scoped local, got %v at %d", c, i)
		}
	}
}

func TestCompile_IfElseEmitsJumps(t *testing.T) {
	fn := compile(t, `if (true) { print 1; } else { print 2; }`)
	c := code(fn)
	sawJumpIfFalse, sawJump := false, false
	for i := 0; i < len(c); i++ {
		switch chunk.OpCode(c[i]) {
		case chunk.OpJumpIfFalse:
			sawJumpIfFalse = true
		case chunk.OpJump:
			sawJump = true
		}
	}
	if !sawJumpIfFalse || !sawJump {
		t.Fatalf("expected both JUMP_IF_FALSE and JUMP, got %v", c)
	}
}

func TestCompile_WhileEmitsLoop(t *testing.T) {
	fn := compile(t, `while (false) { print 1; }`)
	c := code(fn)
	sawLoop := false
	for i := 0; i < len(c); i++ {
		if chunk.OpCode(c[i]) == chunk.OpLoop {
			sawLoop = true
		}
	}
	if !sawLoop {
		t.Fatalf("expected OP_LOOP, got %v", c)
	}
}

func TestCompile_FunctionDeclarationProducesNestedFunctionConstant(t *testing.T) {
	fn := compile(t, `fn add(a, b) { return a + b; }`)
	found := false
	for _, v := range fn.Chunk.(*chunk.Chunk).Constants {
		if v.IsObject() {
			if nested, ok := v.Obj.(*object.Function); ok {
				found = true
				if nested.Name != "add" || nested.Arity != 2 {
					t.Fatalf("unexpected nested function: name=%q arity=%d", nested.Name, nested.Arity)
				}
			}
		}
	}
	if !found {
		t.Fatal("expected a nested function constant for add")
	}
}

func TestCompile_StringLiteralIsInterned(t *testing.T) {
	strs := table.New()
	fn, err := Compile(`let a = "hi"; let b = "hi";`, strs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var seen []*object.ObjString
	for _, v := range fn.Chunk.(*chunk.Chunk).Constants {
		if v.IsString() && v.AsString().Chars == "hi" {
			seen = append(seen, v.AsString())
		}
	}
	if len(seen) < 2 {
		t.Fatalf("expected at least 2 \"hi\" string constants, got %d", len(seen))
	}
	if seen[len(seen)-1] != seen[len(seen)-2] {
		t.Fatal("expected equal string literals to intern to the same object")
	}
}

func TestCompile_TooManyConstantsErrors(t *testing.T) {
	src := "let a = 0;\n"
	for i := 0; i < 300; i++ {
		src += "1;\n"
	}
	compileExpectError(t, src)
}

func TestCompile_RedeclaredLocalErrors(t *testing.T) {
	compileExpectError(t, `{ let a = 1; let a = 2; }`)
}

func TestCompile_ReadOwnInitializerErrors(t *testing.T) {
	compileExpectError(t, `{ let a = a; }`)
}

func TestCompile_ReturnAtTopLevelErrors(t *testing.T) {
	compileExpectError(t, `return 1;`)
}

func TestCompile_InvalidAssignmentTargetErrors(t *testing.T) {
	compileExpectError(t, `1 = 2;`)
}

func TestCompile_UnterminatedStringErrors(t *testing.T) {
	compileExpectError(t, `print "oops;`)
}

func TestCompile_TooManyParametersErrors(t *testing.T) {
	params := ""
	for i := 0; i < 256; i++ {
		if i > 0 {
			params += ", "
		}
		params += "p" + string(rune('a'+i/26)) + string(rune('a'+i%26))
	}
	compileExpectError(t, "fn f("+params+") { return 1; }")
}
