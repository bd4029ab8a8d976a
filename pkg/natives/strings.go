package natives

import (
	"strings"
	"time"

	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/vm"
)

// clock returns wall-clock seconds as a Number, grounded in primitives.go's
// dateNow (there expressed as a millisecond Unix timestamp; here as
// fractional seconds, the conventional clock() shape for this lineage of
// teaching interpreters).
func clock(_ *vm.VM, _ []object.Value) (object.Value, string) {
	return object.Number(float64(time.Now().UnixNano()) / 1e9), ""
}

func strlen(_ *vm.VM, args []object.Value) (object.Value, string) {
	s, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	return object.Number(float64(len(s))), ""
}

func upper(host *vm.VM, args []object.Value) (object.Value, string) {
	s, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	return object.FromObj(host.Intern(strings.ToUpper(s))), ""
}

func lower(host *vm.VM, args []object.Value) (object.Value, string) {
	s, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	return object.FromObj(host.Intern(strings.ToLower(s))), ""
}

func substr(host *vm.VM, args []object.Value) (object.Value, string) {
	s, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	start, errMsg := wantNumber(args, 1)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	length, errMsg := wantNumber(args, 2)
	if errMsg != "" {
		return object.Value{}, errMsg
	}

	lo := int(start)
	n := int(length)
	if lo < 0 || lo > len(s) {
		return object.Value{}, "substr: start out of range."
	}
	hi := lo + n
	if hi < lo || hi > len(s) {
		return object.Value{}, "substr: length out of range."
	}
	return object.FromObj(host.Intern(s[lo:hi])), ""
}
