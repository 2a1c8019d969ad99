// meta_nop.go - metadata updates for unsupported systems
//
// (c) 2021 Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

//go:build !unix

package fsops

import (
	"fmt"
)

func CloneMetadata(dst string, fi *Info) error {
	return fmt.Errorf("clone-meta: not supported")
}

func CloneLink(dst, src string) error {
	return fmt.Errorf("clonelink: not supported")
}
