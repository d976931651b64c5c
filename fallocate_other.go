//go:build !linux && !darwin

package extsort

import "os"

// fallocateFile pre-allocates disk blocks for the generator's output file up
// to size. On platforms without native fallocate, uses Truncate as a
// fallback; this sets file size but may not reserve actual disk blocks on
// all filesystems.
//
// Truncate alone doesn't guarantee the filesystem has committed the
// extended size to disk; on filesystems with delayed allocation the actual
// block reservation can happen later, during writeback. Sync forces that
// now, so a disk-full condition has a chance to surface here, at open
// time, rather than silently during the writer's first WriteString much
// later in the run.
func fallocateFile(file *os.File, size int64) error {
	if err := file.Truncate(size); err != nil {
		return err
	}
	return file.Sync()
}
