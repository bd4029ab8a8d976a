// Command gengolden walks a directory of sample programs and writes a
// ".golden" file of captured stdout next to each one, for the integration
// tests under test/ to diff against. It is a build-time aid, not part of
// the shippable interpreter, and is the one place in this repository that
// uses goroutines: each sample runs in its own in-process compiler+VM, fanned
// out over a bounded worker pool with golang.org/x/sync/errgroup, adapted
// directly from the concurrent fixture generator this codebase's sibling
// gen_vm_expects.go tool uses for its own golden output. Unlike that tool's
// golang.org/x/net/context import (a pre-1.7 compatibility shim), this one
// uses the standard library's context package directly, which has
// superseded it for any module built against a modern Go toolchain.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kristofer/quill/pkg/natives"
	"github.com/kristofer/quill/pkg/vm"
)

func main() {
	dir := flag.String("dir", "testdata/scripts", "directory of .ql sample programs")
	workers := flag.Int("workers", 4, "maximum concurrent sample runs")
	timeout := flag.Duration("timeout", 30*time.Second, "overall deadline for the whole run")
	flag.Parse()

	if err := generate(*dir, *workers, *timeout); err != nil {
		log.Fatal(err)
	}
}

func generate(dir string, workers int, timeout time.Duration) error {
	samples, err := filepath.Glob(filepath.Join(dir, "*.ql"))
	if err != nil {
		return fmt.Errorf("listing samples: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)

	for _, sample := range samples {
		sample := sample
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			return writeGolden(sample)
		})
	}

	return eg.Wait()
}

// writeGolden runs one sample through a fresh VM (so samples never share
// global state) and writes its stdout to a sibling .golden file.
func writeGolden(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	var out bytes.Buffer
	machine := vm.New(vm.WithStdout(&out), vm.WithStderr(os.Stderr))
	natives.Install(machine)
	defer machine.Close()

	machine.Interpret(string(source))

	goldenPath := path[:len(path)-len(filepath.Ext(path))] + ".golden"
	if err := os.WriteFile(goldenPath, out.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", goldenPath, err)
	}
	return nil
}
