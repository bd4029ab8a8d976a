package natives

import (
	"crypto/rand"
	"math/big"

	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/vm"
)

// randInt and randFloat are grounded in primitives.go's randomInt/
// randomFloat, which both use crypto/rand rather than math/rand — a
// choice worth keeping since it is the teacher's own, not a downgrade.
func randInt(_ *vm.VM, args []object.Value) (object.Value, string) {
	lo, errMsg := wantNumber(args, 0)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	hi, errMsg := wantNumber(args, 1)
	if errMsg != "" {
		return object.Value{}, errMsg
	}
	if hi < lo {
		return object.Value{}, "randint: max must be >= min."
	}

	span := big.NewInt(int64(hi) - int64(lo) + 1)
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return object.Value{}, "randint: " + err.Error()
	}
	return object.Number(float64(int64(lo) + n.Int64())), ""
}

func randFloat(_ *vm.VM, _ []object.Value) (object.Value, string) {
	n, err := rand.Int(rand.Reader, big.NewInt(1<<53))
	if err != nil {
		return object.Value{}, "randfloat: " + err.Error()
	}
	return object.Number(float64(n.Int64()) / float64(1<<53)), ""
}
