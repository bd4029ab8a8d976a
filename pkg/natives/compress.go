package natives

import (
	"bytes"
	"compress/gzip"
	"io"
	"strings"

	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/vm"
)

// gzipNative and gunzipNative are grounded in primitives.go's
// gzipCompress/gzipDecompress. The compressed bytes are carried as a Go
// string holding raw bytes (not necessarily valid UTF-8) since the
// language's String variant is a byte sequence, not guaranteed text.
func gzipNative(host *vm.VM, args []object.Value) (object.Value, string) {
	s, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		return object.Value{}, "gzip: " + err.Error()
	}
	if err := w.Close(); err != nil {
		return object.Value{}, "gzip: " + err.Error()
	}
	return object.FromObj(host.Intern(buf.String())), ""
}

func gunzipNative(host *vm.VM, args []object.Value) (object.Value, string) {
	s, errMsg := wantString(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	r, err := gzip.NewReader(strings.NewReader(s))
	if err != nil {
		return object.Value{}, "gunzip: " + err.Error()
	}
	defer r.Close()

	decompressed, err := io.ReadAll(r)
	if err != nil {
		return object.Value{}, "gunzip: " + err.Error()
	}
	return object.FromObj(host.Intern(string(decompressed))), ""
}
