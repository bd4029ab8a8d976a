package natives

import (
	"os"

	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/vm"
)

// readFile, writeFile, and fileExists are grounded in primitives.go's
// fileRead/fileWrite/fileExists (stdlib os).
func readFile(host *vm.VM, args []object.Value) (object.Value, string) {
	path, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return object.Value{}, "readfile: " + err.Error()
	}
	return object.FromObj(host.Intern(string(data))), ""
}

func writeFile(_ *vm.VM, args []object.Value) (object.Value, string) {
	path, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	content, errMsg := wantString(args, 1)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return object.Value{}, "writefile: " + err.Error()
	}
	return object.Bool(true), ""
}

func fileExists(_ *vm.VM, args []object.Value) (object.Value, string) {
	path, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	_, err := os.Stat(path)
	return object.Bool(err == nil), ""
}
