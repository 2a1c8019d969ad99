// safefile_test.go - atomic writer tests

package fsops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSafeFileCommit(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	nm := filepath.Join(tmpdir, "out")

	sf, err := NewSafeFile(nm, 0, os.O_RDWR, 0600)
	assert(err == nil, "safefile: %s", err)
	defer sf.Abort()

	_, err = sf.Write([]byte("committed"))
	assert(err == nil, "write: %s", err)

	err = sf.Close()
	assert(err == nil, "close: %s", err)

	assert(byteEq(readFile(t, nm), []byte("committed")), "content mismatch")
}

func TestSafeFileAbort(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	nm := filepath.Join(tmpdir, "out")

	sf, err := NewSafeFile(nm, 0, os.O_RDWR, 0600)
	assert(err == nil, "safefile: %s", err)

	_, err = sf.Write([]byte("never seen"))
	assert(err == nil, "write: %s", err)

	sf.Abort()

	// neither the final file nor the temp artifact survive
	_, err = os.Lstat(nm)
	assert(os.IsNotExist(err), "final file exists: %v", err)

	ents, err := os.ReadDir(tmpdir)
	assert(err == nil, "readdir: %s", err)
	for _, de := range ents {
		assert(!strings.Contains(de.Name(), ".tmp."), "temp left behind: %s", de.Name())
	}
}

func TestSafeFileNoOverwrite(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	nm := filepath.Join(tmpdir, "out")
	err := mkfilex(nm, []byte("old"))
	assert(err == nil, "create: %s", err)

	_, err = NewSafeFile(nm, 0, os.O_RDWR, 0600)
	assert(err != nil, "overwrote without OPT_OVERWRITE")

	sf, err := NewSafeFile(nm, OPT_OVERWRITE, os.O_RDWR, 0600)
	assert(err == nil, "safefile: %s", err)
	defer sf.Abort()

	_, err = sf.Write([]byte("new"))
	assert(err == nil, "write: %s", err)
	err = sf.Close()
	assert(err == nil, "close: %s", err)

	assert(byteEq(readFile(t, nm), []byte("new")), "content mismatch")
}

func TestSafeFileWriteAfterAbort(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	sf, err := NewSafeFile(filepath.Join(tmpdir, "out"), 0, os.O_RDWR, 0600)
	assert(err == nil, "safefile: %s", err)

	sf.Abort()
	_, err = sf.Write([]byte("x"))
	assert(err != nil, "write after abort succeeded")
}
