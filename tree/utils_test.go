// utils_test.go -- shared test helpers

package tree

import (
	"bytes"
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/opencoff/go-fsops"
	"github.com/opencoff/go-fsops/scan"
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

func mkfilex(fn string, b []byte) error {
	bn := filepath.Dir(fn)
	if err := os.MkdirAll(bn, 0700); err != nil {
		return fmt.Errorf("mkdir: %s: %w", bn, err)
	}
	return os.WriteFile(fn, b, 0600)
}

// deterministic pseudo-random content; same seed, same bytes
func seededBytes(n int64, seed uint64) []byte {
	var sd [32]byte
	binary.LittleEndian.PutUint64(sd[:8], seed)

	rng := mrand.NewChaCha8(sd)
	b := make([]byte, n)

	var w [8]byte
	for i := int64(0); i < n; i += 8 {
		binary.LittleEndian.PutUint64(w[:], rng.Uint64())
		copy(b[i:], w[:])
	}
	return b
}

// the deep tree from the copy scenarios: four seeded files across
// four directory levels, 491520 bytes in total
func mkDeepTree(base string) error {
	files := []struct {
		nm   string
		sz   int64
		seed uint64
	}{
		{"a.bin", 32768, 12345},
		{"foo/b.bin", 65536, 54321},
		{"foo/bar/c.bin", 131072, 54321},
		{"foo/bar/hello/world/d.bin", 262144, 54321},
	}

	for _, f := range files {
		nm := filepath.Join(base, f.nm)
		if err := mkfilex(nm, seededBytes(f.sz, f.seed)); err != nil {
			return err
		}
	}
	return nil
}

// treesEqual checks that src and dst hold the same relative paths
// with byte-identical file contents.
func treesEqual(t *testing.T, src, dst string) {
	assert := newAsserter(t)

	checkCovered := func(a, b string) {
		for e, err := range scan.Entries(a, scan.Options{MaxDepth: scan.Unlimited()}) {
			assert(err == nil, "scan %s: %s", a, err)

			other, err := fsops.RebasePath(a, e.Path, b)
			assert(err == nil, "rebase %s: %s", e.Path, err)

			if e.Info.IsDir() {
				fi, err := os.Lstat(other)
				assert(err == nil, "missing dir %s", other)
				assert(fi.IsDir(), "%s is not a dir", other)
				continue
			}
			if !e.Info.IsRegular() {
				continue
			}

			x, err := os.ReadFile(e.Path)
			assert(err == nil, "read %s: %s", e.Path, err)
			y, err := os.ReadFile(other)
			assert(err == nil, "read %s: %s", other, err)
			assert(bytes.Equal(x, y), "content differs: %s vs %s", e.Path, other)
		}
	}

	checkCovered(src, dst)
	checkCovered(dst, src)
}
