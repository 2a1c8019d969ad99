// utils_test.go -- shared test helpers

package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func newAsserter(t *testing.T) func(cond bool, msg string, args ...interface{}) {
	return func(cond bool, msg string, args ...interface{}) {
		if cond {
			return
		}

		_, file, line, ok := runtime.Caller(1)
		if !ok {
			file = "???"
			line = 0
		}

		s := fmt.Sprintf(msg, args...)
		t.Fatalf("\n%s: %d: Assertion failed: %s\n", file, line, s)
	}
}

func mkfilex(fn string, n int) error {
	bn := filepath.Dir(fn)
	if err := os.MkdirAll(bn, 0700); err != nil {
		return fmt.Errorf("mkdir: %s: %w", bn, err)
	}

	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i)
	}
	return os.WriteFile(fn, b, 0600)
}

// the tree most scan tests start from:
//
//	a.bin
//	foo/b.bin
//	foo/bar/c.bin
//	foo/bar/hello/world/d.bin
func mkScanTree(tmpdir string) error {
	files := []struct {
		nm string
		sz int
	}{
		{"a.bin", 1024},
		{"foo/b.bin", 2048},
		{"foo/bar/c.bin", 4096},
		{"foo/bar/hello/world/d.bin", 8192},
	}

	for _, f := range files {
		if err := mkfilex(filepath.Join(tmpdir, f.nm), f.sz); err != nil {
			return err
		}
	}
	return nil
}

// collect runs a scan and maps path -> depth, failing on any
// yielded error.
func collect(t *testing.T, base string, opt Options) map[string]EntryDepth {
	assert := newAsserter(t)

	res := make(map[string]EntryDepth)
	for e, err := range Entries(base, opt) {
		assert(err == nil, "scan error: %s", err)

		_, seen := res[e.Path]
		assert(!seen, "yielded twice: %s", e.Path)
		res[e.Path] = e.Depth
	}
	return res
}
