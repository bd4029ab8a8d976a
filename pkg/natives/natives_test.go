package natives

import (
	"bytes"
	"strings"
	"testing"

	"github.com/kristofer/quill/pkg/vm"
)

func runWithNatives(t *testing.T, src string) (stdout, stderr string, result vm.InterpretResult) {
	t.Helper()
	var out, errOut bytes.Buffer
	host := vm.New(vm.WithStdout(&out), vm.WithStderr(&errOut))
	defer host.Close()
	Install(host)
	result = host.Interpret(src)
	return out.String(), errOut.String(), result
}

func TestStrlen(t *testing.T) {
	out, _, result := runWithNatives(t, `print strlen("hello");`)
	if result != vm.InterpretOK || out != "5\n" {
		t.Fatalf("unexpected result=%v out=%q", result, out)
	}
}

func TestUpperLower(t *testing.T) {
	out, _, _ := runWithNatives(t, `print upper("shout"); print lower("WHISPER");`)
	if out != "\"SHOUT\"\n\"whisper\"\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSubstr(t *testing.T) {
	out, _, _ := runWithNatives(t, `print substr("hello world", 6, 5);`)
	if out != "\"world\"\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSha256(t *testing.T) {
	out, _, _ := runWithNatives(t, `print sha256("");`)
	if !strings.HasPrefix(out, "\"e3b0c442") {
		t.Fatalf("unexpected digest: %q", out)
	}
}

func TestBase64RoundTrip(t *testing.T) {
	out, _, _ := runWithNatives(t, `print base64decode(base64encode("round trip"));`)
	if out != "\"round trip\"\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestGzipRoundTrip(t *testing.T) {
	out, _, result := runWithNatives(t, `print gunzip(gzip("compress me"));`)
	if result != vm.InterpretOK {
		t.Fatalf("unexpected result: %v", result)
	}
	if out != "\"compress me\"\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRegexMatchAndReplace(t *testing.T) {
	out, _, _ := runWithNatives(t, `print regexmatch("^h.llo$", "hello"); print regexreplace("o", "foo", "0");`)
	if out != "true\n\"f00\"\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestRandIntWithinRange(t *testing.T) {
	out, _, result := runWithNatives(t, `let n = randint(1, 1); print n;`)
	if result != vm.InterpretOK || out != "1\n" {
		t.Fatalf("unexpected result=%v out=%q", result, out)
	}
}

func TestFileExistsAndReadWrite(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sample.txt"

	src := `
		writefile("` + path + `", "native stdlib");
		print fileexists("` + path + `");
		print readfile("` + path + `");
	`
	out, _, result := runWithNatives(t, src)
	if result != vm.InterpretOK {
		t.Fatalf("unexpected result: %v", result)
	}
	if out != "true\n\"native stdlib\"\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestFileNotFoundIsRuntimeError(t *testing.T) {
	_, errOut, result := runWithNatives(t, `print readfile("/nonexistent/path/for/sure");`)
	if result != vm.InterpretRuntimeError {
		t.Fatalf("expected runtime error, got %v", result)
	}
	if !strings.Contains(errOut, "readfile:") {
		t.Fatalf("unexpected message: %q", errOut)
	}
}

func TestClockReturnsNumber(t *testing.T) {
	out, _, result := runWithNatives(t, `let t = clock(); print t > 0;`)
	if result != vm.InterpretOK || out != "true\n" {
		t.Fatalf("unexpected result=%v out=%q", result, out)
	}
}
