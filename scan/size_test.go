// size_test.go - tree measurement tests

package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTreeSize(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := t.TempDir()
	err := mkScanTree(tmpdir)
	assert(err == nil, "mktree: %s", err)

	n, err := TreeSize(tmpdir, false)
	assert(err == nil, "treesize: %s", err)

	// must equal the sum of the individual file sizes
	var want int64
	for e, err := range Entries(tmpdir, Options{MaxDepth: Unlimited()}) {
		assert(err == nil, "scan: %s", err)
		if e.Info.IsRegular() {
			want += e.Info.Size()
		}
	}
	assert(n == want, "size %d != %d", n, want)
	assert(n == 1024+2048+4096+8192, "size: %d", n)
}

func TestTreeSizeFollow(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := t.TempDir()

	err := mkfilex(filepath.Join(tmpdir, "other/big.bin"), 4096)
	assert(err == nil, "mkfile: %s", err)

	base := filepath.Join(tmpdir, "base")
	err = os.Mkdir(base, 0700)
	assert(err == nil, "mkdir: %s", err)
	err = os.Symlink(filepath.Join(tmpdir, "other"), filepath.Join(base, "lnk"))
	assert(err == nil, "symlink: %s", err)

	// without following, the link contributes nothing
	n, err := TreeSize(base, false)
	assert(err == nil, "treesize: %s", err)
	assert(n == 0, "size: %d", n)

	// following counts the linked subtree
	n, err = TreeSize(base, true)
	assert(err == nil, "treesize: %s", err)
	assert(n == 4096, "size: %d", n)
}

func TestIsEmpty(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := t.TempDir()

	ok, err := IsEmpty(tmpdir)
	assert(err == nil, "isempty: %s", err)
	assert(ok, "fresh dir not empty")

	err = mkfilex(filepath.Join(tmpdir, "x"), 1)
	assert(err == nil, "mkfile: %s", err)

	ok, err = IsEmpty(tmpdir)
	assert(err == nil, "isempty: %s", err)
	assert(!ok, "dir with a file is empty")

	// empty iff a scan yields zero items
	n, err := Count(tmpdir)
	assert(err == nil, "count: %s", err)
	assert((n == 0) == ok, "IsEmpty %v vs scan count %d", ok, n)
}
