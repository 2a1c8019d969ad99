// utils_test.go -- shared test helpers

package fsops

import (
	"encoding/binary"
	"flag"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"path/filepath"
	"runtime"
	"strings"
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

var testDir = flag.String("testdir", "", "Use 'T' as the testdir for file I/O tests")

func getTmpdir(t *testing.T) string {
	assert := newAsserter(t)
	tmpdir := t.TempDir()

	if len(*testDir) > 0 {
		tmpdir = filepath.Join(*testDir, t.Name())
		err := os.MkdirAll(tmpdir, 0700)
		assert(err == nil, "mkdir %s: %s", tmpdir, err)
		t.Logf("Using %s as test dir .. \n", tmpdir)
		t.Cleanup(func() {
			t.Logf("cleaning up %s ..\n", tmpdir)
			os.RemoveAll(tmpdir)
		})
	}
	return tmpdir
}

func mkfilex(fn string, b []byte) error {
	bn := filepath.Dir(fn)
	if err := os.MkdirAll(bn, 0700); err != nil {
		return fmt.Errorf("mkdir: %s: %w", bn, err)
	}

	fd, err := os.OpenFile(fn, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("creat: %s: %w", fn, err)
	}

	fd.Write(b)
	fd.Sync()
	return fd.Close()
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

func byteEq(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func readFile(t *testing.T, nm string) []byte {
	assert := newAsserter(t)
	b, err := os.ReadFile(nm)
	assert(err == nil, "read %s: %s", nm, err)
	return b
}

// caseInsensitiveFS probes whether the filesystem holding 'dir'
// resolves the same name under a case change. The probe creates a
// mixed-case temp file and stats the case-swapped name.
func caseInsensitiveFS(dir string) (bool, error) {
	fd, err := os.CreateTemp(dir, "CaSeProbe")
	if err != nil {
		return false, err
	}
	nm := fd.Name()
	defer os.Remove(nm)
	defer fd.Close()

	base := filepath.Base(nm)
	swapped := filepath.Join(dir, strings.ToLower(base))
	if swapped == nm {
		swapped = filepath.Join(dir, strings.ToUpper(base))
	}

	if _, err = os.Stat(swapped); err == nil {
		return true, nil
	}
	return false, nil
}
