package natives

import (
	"regexp"

	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/vm"
)

// regexMatch and regexReplace are grounded in primitives.go's
// regexMatch/regexReplace (stdlib regexp).
func regexMatch(_ *vm.VM, args []object.Value) (object.Value, string) {
	pattern, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	s, errMsg := wantString(args, 1)
	if errMsg != "" {
		return object.Value{}, errMsg
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return object.Value{}, "regexmatch: " + err.Error()
	}
	return object.Bool(re.MatchString(s)), ""
}

func regexReplace(host *vm.VM, args []object.Value) (object.Value, string) {
	pattern, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	s, errMsg := wantString(args, 1)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	repl, errMsg := wantString(args, 2)
	if errMsg != "" {
		return object.Value{}, errMsg
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return object.Value{}, "regexreplace: " + err.Error()
	}
	return object.FromObj(host.Intern(re.ReplaceAllString(s, repl))), ""
}
