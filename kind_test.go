// kind_test.go - entry classification tests

package fsops

import (
	"os"
	"path/filepath"
	"testing"
)

func TestKindOf(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	file := filepath.Join(tmpdir, "f")
	dir := filepath.Join(tmpdir, "d")
	flink := filepath.Join(tmpdir, "fl")
	dlink := filepath.Join(tmpdir, "dl")
	broken := filepath.Join(tmpdir, "bl")

	err := mkfilex(file, []byte("x"))
	assert(err == nil, "create: %s", err)
	err = os.Mkdir(dir, 0700)
	assert(err == nil, "mkdir: %s", err)
	err = os.Symlink(file, flink)
	assert(err == nil, "symlink: %s", err)
	err = os.Symlink(dir, dlink)
	assert(err == nil, "symlink: %s", err)
	err = os.Symlink(filepath.Join(tmpdir, "no-such"), broken)
	assert(err == nil, "symlink: %s", err)

	tests := []struct {
		nm   string
		want Kind
	}{
		{file, KindBareFile},
		{dir, KindBareDir},
		{flink, KindSymlinkToFile},
		{dlink, KindSymlinkToDir},
		{broken, KindBrokenSymlink},
		{filepath.Join(tmpdir, "missing"), KindNotFound},
	}

	for _, tx := range tests {
		k, err := KindOf(tx.nm)
		assert(err == nil, "%s: %s", tx.nm, err)
		assert(k == tx.want, "%s: got %s, want %s", tx.nm, k, tx.want)
	}
}
