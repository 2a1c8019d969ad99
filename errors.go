// errors.go - enumerated failure kinds for fsops
//
// (c) 2024 Sudhi Herle <sudhi@herle.net>
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
	"fmt"
)

// Sentinel errors classifying the ways an operation can fail.
// Operations wrap these in an *OpError; use errors.Is to test
// for a particular kind.
var (
	// source-side failures
	ErrSrcNotFound = errors.New("source does not exist")
	ErrSrcNotAFile = errors.New("source path is not a file")
	ErrSrcNotADir  = errors.New("source path is not a directory")

	// destination-side failures
	ErrDstExists   = errors.New("destination already exists")
	ErrDstNotAFile = errors.New("destination path is not a file")
	ErrDstNotEmpty = errors.New("destination directory is not empty")

	// relationship failures between source and destination
	ErrSameFile    = errors.New("source and destination are the same")
	ErrDstUnderSrc = errors.New("destination is a descendant of source")

	// path algebra failures
	ErrNotUnderBase = errors.New("path is not under the base directory")

	// single-path failures (remove, size, scan)
	ErrNotFound = errors.New("path does not exist")
	ErrNotAFile = errors.New("path is not a file")
	ErrNotADir  = errors.New("path is not a directory")
)

// errAny returns true if the target error 'err' matches
// any in the list 'errs'; and returns false otherwise
func errAny(err error, errs ...error) bool {
	for _, e := range errs {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

// OpError is the error type returned by all fsops operations.
// Op names the step that failed ("stat-src", "canon-dst", "rename", ..)
// so that the error message can be produced without further I/O.
type OpError struct {
	Op  string
	Src string
	Dst string
	Err error
}

// Error returns a string representation of OpError
func (e *OpError) Error() string {
	if len(e.Dst) > 0 {
		return fmt.Sprintf("fsops: %s '%s' '%s': %s",
			e.Op, e.Src, e.Dst, e.Err.Error())
	}
	return fmt.Sprintf("fsops: %s '%s': %s", e.Op, e.Src, e.Err.Error())
}

// Unwrap returns the underlying wrapped error
func (e *OpError) Unwrap() error {
	return e.Err
}

var _ error = &OpError{}
