//go:build linux

package extsort

import "golang.org/x/sys/unix"

// fadviseSequential hints to the kernel that the file will be read
// sequentially. Applied to chunk-input and merge-reader file descriptors.
// Best-effort: errors are silently ignored.
func fadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}

// fadviseDontNeed hints to the kernel that the pages backing fd are no
// longer needed, so it can drop them from the page cache immediately. A
// merge chunk file is read start to finish exactly once and then deleted;
// unlike a reusable input that benefits from staying cached, keeping a
// spent chunk's pages around only pressures the cache against everything
// else competing for it during a large merge. Best-effort: errors are
// silently ignored.
func fadviseDontNeed(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_DONTNEED)
}
