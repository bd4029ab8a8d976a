package natives

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/vm"
)

// sha256Native and md5Native are grounded in primitives.go's sha256Hash/
// md5Hash, returning the lowercase hex digest exactly as the teacher does.
func sha256Native(host *vm.VM, args []object.Value) (object.Value, string) {
	s, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	sum := sha256.Sum256([]byte(s))
	return object.FromObj(host.Intern(fmt.Sprintf("%x", sum))), ""
}

func md5Native(host *vm.VM, args []object.Value) (object.Value, string) {
	s, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	sum := md5.Sum([]byte(s))
	return object.FromObj(host.Intern(fmt.Sprintf("%x", sum))), ""
}

func base64Encode(host *vm.VM, args []object.Value) (object.Value, string) {
	s, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	return object.FromObj(host.Intern(base64.StdEncoding.EncodeToString([]byte(s)))), ""
}

func base64Decode(host *vm.VM, args []object.Value) (object.Value, string) {
	s, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return object.Value{}, "base64decode: " + err.Error()
	}
	return object.FromObj(host.Intern(string(decoded))), ""
}
