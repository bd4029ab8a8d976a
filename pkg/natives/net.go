package natives

import (
	"io"
	"net/http"

	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/vm"
)

// httpGet is grounded in primitives.go's httpGet, returning the response
// body as a String or surfacing the failure as the native's error string
// (which the VM turns into an ordinary runtime error, never a panic).
func httpGet(host *vm.VM, args []object.Value) (object.Value, string) {
	url, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}

	resp, err := http.Get(url)
	if err != nil {
		return object.Value{}, "httpget: " + err.Error()
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return object.Value{}, "httpget: " + err.Error()
	}
	return object.FromObj(host.Intern(string(body))), ""
}
