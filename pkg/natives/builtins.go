package natives

import (
	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/vm"
)

// builtin is a native function still needing access to the VM that is
// installing it (to intern its result string, the way the VM interns
// every other string it creates).
type builtin func(host *vm.VM, args []object.Value) (object.Value, string)

// builtins returns the full native-function table, bound to host so each
// entry satisfies object.NativeFn directly.
func builtins(host *vm.VM) map[string]object.NativeFn {
	table := map[string]builtin{
		"clock":        clock,
		"strlen":       strlen,
		"upper":        upper,
		"lower":        lower,
		"substr":       substr,
		"sha256":       sha256Native,
		"md5":          md5Native,
		"base64encode": base64Encode,
		"base64decode": base64Decode,
		"gzip":         gzipNative,
		"gunzip":       gunzipNative,
		"httpget":      httpGet,
		"regexmatch":   regexMatch,
		"regexreplace": regexReplace,
		"randint":      randInt,
		"randfloat":    randFloat,
		"readfile":     readFile,
		"writefile":    writeFile,
		"fileexists":   fileExists,
	}

	out := make(map[string]object.NativeFn, len(table))
	for name, fn := range table {
		fn := fn
		out[name] = func(args []object.Value) (object.Value, string) {
			return fn(host, args)
		}
	}
	return out
}

func wantString(args []object.Value, i int) (string, string) {
	if i >= len(args) || !args[i].IsString() {
		return "", "Expected a string argument."
	}
	return args[i].AsString().Chars, ""
}

func wantNumber(args []object.Value, i int) (float64, string) {
	if i >= len(args) || !args[i].IsNumber() {
		return 0, "Expected a number argument."
	}
	return args[i].Number, ""
}
