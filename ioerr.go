package extsort

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	extsorterr "github.com/tamirms/extsort/errors"
)

// diskFullSubstring is checked against an error's message when the
// underlying error doesn't wrap syscall.ENOSPC cleanly, e.g. an error
// surfaced through a platform-specific path or a filesystem driver that
// doesn't round-trip the original errno.
const diskFullSubstring = "no space left on device"

// classifyIOErr wraps a filesystem error from op with the IO sentinel, or
// the more specific DiskFull sentinel when the underlying error is ENOSPC,
// either directly (errors.Is) or by message substring.
func classifyIOErr(op string, err error) error {
	if isDiskFull(err) {
		return fmt.Errorf("%w: %s: %v", extsorterr.ErrDiskFull, op, err)
	}
	return fmt.Errorf("%w: %s: %v", extsorterr.ErrIO, op, err)
}

func isDiskFull(err error) bool {
	if errors.Is(err, syscall.ENOSPC) {
		return true
	}
	return strings.Contains(err.Error(), diskFullSubstring)
}
