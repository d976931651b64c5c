// Command extgen generates a synthetic line-oriented text file of
// approximately the requested size, for exercising extsort against inputs
// that don't fit in memory.
//
// Usage:
//
//	extgen [output] [target_bytes]
//
// output defaults to "generated.txt". target_bytes defaults to 20 GiB.
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

const defaultTargetBytes = 20 << 30

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	output := "generated.txt"
	if len(args) >= 1 {
		output = args[0]
	}

	targetBytes := int64(defaultTargetBytes)
	if len(args) >= 2 {
		v, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil || v <= 0 {
			fmt.Fprintf(os.Stderr, "extgen: invalid target_bytes %q\n", args[1])
			return 1
		}
		targetBytes = v
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := extsort.Generate(ctx, extsort.GenerateConfig{
		OutputPath:  output,
		TargetBytes: targetBytes,
		Diagnostics: extsort.NewDiagnostics(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "extgen: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps a returned error to a process exit status, so scripts
// calling extgen can branch on failure class without parsing stderr.
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
