//go:build linux

package extsort

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile pre-allocates disk blocks for the generator's output file up
// to size, ahead of the writer actually producing that many bytes. On
// Linux, uses the fallocate syscall for efficient space reservation.
//
// A fallocate failure of ENOSPC is returned as-is rather than papered over
// with an Ftruncate fallback: Ftruncate would happily set the logical file
// size on a disk that has no space to back it, turning a disk-full signal
// the caller could act on immediately (before any record has been written)
// into a sparse file that only fails much later, mid-write, after the
// pipeline has already burned time generating records that now have to be
// discarded. Any other fallocate failure (unsupported on this filesystem,
// e.g. some NFS mounts) falls back to Ftruncate as before.
func fallocateFile(file *os.File, size int64) error {
	err := unix.Fallocate(int(file.Fd()), 0, 0, size)
	if err != nil {
		if err == unix.ENOSPC {
			return err
		}
		return unix.Ftruncate(int(file.Fd()), size)
	}
	// With mode 0, fallocate already extends the file size to cover the
	// range; Ftruncate sets it to size explicitly.
	return unix.Ftruncate(int(file.Fd()), size)
}
