// Command extsort sorts a line-oriented text file too large to fit in
// memory.
//
// Usage:
//
//	extsort <input> <output> [temp_dir] [chunk_size_mb]
//
// temp_dir defaults to a uniquely-named subdirectory of the system
// temporary directory. chunk_size_mb defaults to the library's own
// default chunk budget.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/tamirms/extsort"
	extsorterr "github.com/tamirms/extsort/errors"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: extsort <input> <output> [temp_dir] [chunk_size_mb]")
		return 1
	}

	input, output := args[0], args[1]

	var tempDir string
	if len(args) >= 3 {
		tempDir = args[2]
	} else {
		dir, err := os.MkdirTemp(os.TempDir(), "extsort-")
		if err != nil {
			fmt.Fprintf(os.Stderr, "extsort: create temp dir: %v\n", err)
			return 3
		}
		tempDir = dir
	}

	var maxChunkBytes int64
	if len(args) >= 4 {
		mb, err := strconv.Atoi(args[3])
		if err != nil || mb <= 0 {
			fmt.Fprintf(os.Stderr, "extsort: invalid chunk_size_mb %q\n", args[3])
			return 1
		}
		maxChunkBytes = int64(mb) << 20
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := extsort.Sort(ctx, extsort.SortConfig{
		InputPath:     input,
		OutputPath:    output,
		TempDir:       tempDir,
		MaxChunkBytes: maxChunkBytes,
		Diagnostics:   extsort.NewDiagnostics(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "extsort: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps a returned error to a process exit status, so scripts
// calling extsort can branch on failure class without parsing stderr.
func exitCode(err error) int {
	switch extsorterr.Classify(err) {
	case extsorterr.KindInvalidArgument:
		return 1
	case extsorterr.KindInputMissing:
		return 2
	case extsorterr.KindDiskFull, extsorterr.KindIO:
		return 3
	case extsorterr.KindCancelled:
		return 4
	default:
		return 99
	}
}
