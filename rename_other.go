// rename_other.go - rename failure classification, non-unix
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

//go:build !unix

package fsops

// without a reliable errno we take the fallback for every rename
// failure; the byte copy surfaces the real error if there is one.
func renameFallsBack(err error) bool {
	return err != nil
}
