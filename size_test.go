// size_test.go - file size query tests

package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFileSize(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	nm := filepath.Join(tmpdir, "a")
	content := seededBytes(4096+17, 7)
	err := mkfilex(nm, content)
	assert(err == nil, "create %s: %s", nm, err)

	n, err := FileSize(nm)
	assert(err == nil, "size: %s", err)

	// size must equal the length of a full read
	b, err := os.ReadFile(nm)
	assert(err == nil, "read: %s", err)
	assert(n == int64(len(b)), "size %d != read %d", n, len(b))
}

func TestFileSizeFollowsSymlink(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	real := filepath.Join(tmpdir, "real")
	lnk := filepath.Join(tmpdir, "lnk")

	err := mkfilex(real, []byte("hello"))
	assert(err == nil, "create %s: %s", real, err)
	err = os.Symlink(real, lnk)
	assert(err == nil, "symlink: %s", err)

	n, err := FileSize(lnk)
	assert(err == nil, "size: %s", err)
	assert(n == 5, "size: %d", n)
}

func TestFileSizeMissing(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	_, err := FileSize(filepath.Join(tmpdir, "no-such"))
	assert(errors.Is(err, ErrNotFound), "want not-found, got %s", err)
}

func TestFileSizeDir(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	_, err := FileSize(tmpdir)
	assert(errors.Is(err, ErrNotAFile), "want not-a-file, got %s", err)
}
