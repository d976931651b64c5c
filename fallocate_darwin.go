//go:build darwin

package extsort

import (
	"os"

	"golang.org/x/sys/unix"
)

// fallocateFile pre-allocates disk blocks for the generator's output file up
// to size, ahead of the writer actually producing that many bytes. On
// macOS, uses fcntl F_PREALLOCATE for space reservation.
//
// F_PREALLOCATE failing with ENOSPC is returned as-is rather than papered
// over with an Ftruncate fallback, which would set the logical file size
// without actually reserving the space and only surface the disk-full
// condition later, mid-write. Any other F_PREALLOCATE failure (unsupported
// on this volume) falls back to Ftruncate as before.
func fallocateFile(file *os.File, size int64) error {
	// F_PREALLOCATE with F_ALLOCATEALL - allocate all requested space or fail
	fst := unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Offset:  0,
		Length:  size,
	}

	err := unix.FcntlFstore(file.Fd(), unix.F_PREALLOCATE, &fst)
	if err != nil {
		if err == unix.ENOSPC {
			return err
		}
		return unix.Ftruncate(int(file.Fd()), size)
	}

	// Set the file size (F_PREALLOCATE only reserves space, doesn't set size)
	return unix.Ftruncate(int(file.Fd()), size)
}
