// move_test.go - file move tests
//
// (c) 2025 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

package fsops

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMoveFileRename(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	src := filepath.Join(tmpdir, "a")
	dst := filepath.Join(tmpdir, "b")

	err := mkfilex(src, []byte("hello"))
	assert(err == nil, "create %s: %s", src, err)

	r, err := MoveFile(dst, src, MoveOpts{})
	assert(err == nil, "move: %s", err)
	assert(r.Outcome == Created, "outcome: %s", r.Outcome)
	assert(r.Method == MethodRename, "method: %s", r.Method)
	assert(r.Bytes == 5, "bytes: %d", r.Bytes)

	_, err = os.Lstat(src)
	assert(os.IsNotExist(err), "source still there: %v", err)
	assert(byteEq(readFile(t, dst), []byte("hello")), "content mismatch: %s", dst)
}

func TestMoveFileSymlinkSource(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	real := filepath.Join(tmpdir, "real.txt")
	lnk := filepath.Join(tmpdir, "link.txt")
	dst := filepath.Join(tmpdir, "moved.txt")

	err := mkfilex(real, []byte("hello"))
	assert(err == nil, "create %s: %s", real, err)
	err = os.Symlink(real, lnk)
	assert(err == nil, "symlink: %s", err)

	r, err := MoveFile(dst, lnk, MoveOpts{})
	assert(err == nil, "move: %s", err)
	assert(r.Method == MethodCopyDelete, "method: %s", r.Method)

	// the link is gone, the real file is untouched, and the
	// destination is a real file
	_, err = os.Lstat(lnk)
	assert(os.IsNotExist(err), "link still there: %v", err)
	assert(byteEq(readFile(t, real), []byte("hello")), "target changed: %s", real)

	k, err := KindOf(dst)
	assert(err == nil, "kind: %s", err)
	assert(k == KindBareFile, "kind: %s", k)
	assert(byteEq(readFile(t, dst), []byte("hello")), "content mismatch: %s", dst)
}

func TestMoveFileExisting(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	src := filepath.Join(tmpdir, "a")
	dst := filepath.Join(tmpdir, "b")

	err := mkfilex(src, []byte("new"))
	assert(err == nil, "create %s: %s", src, err)
	err = mkfilex(dst, []byte("old"))
	assert(err == nil, "create %s: %s", dst, err)

	_, err = MoveFile(dst, src, MoveOpts{Existing: Abort})
	assert(errors.Is(err, ErrDstExists), "want dst-exists, got %s", err)

	r, err := MoveFile(dst, src, MoveOpts{Existing: Skip})
	assert(err == nil, "skip: %s", err)
	assert(r.Outcome == Skipped, "outcome: %s", r.Outcome)
	assert(byteEq(readFile(t, src), []byte("new")), "skip touched source")

	r, err = MoveFile(dst, src, MoveOpts{Existing: Overwrite})
	assert(err == nil, "overwrite: %s", err)
	assert(r.Outcome == Overwritten, "outcome: %s", r.Outcome)
	assert(byteEq(readFile(t, dst), []byte("new")), "content mismatch: %s", dst)

	_, err = os.Lstat(src)
	assert(os.IsNotExist(err), "source still there: %v", err)
}

func TestMoveFileRoundTrip(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	a := filepath.Join(tmpdir, "a")
	b := filepath.Join(tmpdir, "b")

	content := seededBytes(16*1024, 99)
	err := mkfilex(a, content)
	assert(err == nil, "create %s: %s", a, err)

	_, err = MoveFile(b, a, MoveOpts{})
	assert(err == nil, "move a->b: %s", err)

	_, err = MoveFile(a, b, MoveOpts{})
	assert(err == nil, "move b->a: %s", err)

	assert(byteEq(readFile(t, a), content), "content mismatch after round trip")
	_, err = os.Lstat(b)
	assert(os.IsNotExist(err), "intermediate still there: %v", err)
}

func TestMoveFileMissingSource(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	_, err := MoveFile(filepath.Join(tmpdir, "b"), filepath.Join(tmpdir, "a"), MoveOpts{})
	assert(errors.Is(err, ErrSrcNotFound), "want src-not-found, got %s", err)
}

func TestMoveFileProgress(t *testing.T) {
	assert := newAsserter(t)
	tmpdir := getTmpdir(t)

	src := filepath.Join(tmpdir, "a")
	dst := filepath.Join(tmpdir, "b")

	err := mkfilex(src, []byte("hello"))
	assert(err == nil, "create %s: %s", src, err)

	var last Progress
	var n int
	r, err := MoveFileWithProgress(dst, src, MoveOpts{}, func(p Progress) {
		last = p
		n++
	})
	assert(err == nil, "move: %s", err)
	assert(n >= 1, "no progress updates")
	assert(last.Bytes == last.Total, "final update: %d != %d", last.Bytes, last.Total)
	assert(last.Total == r.Bytes, "total %d != result %d", last.Total, r.Bytes)
}
