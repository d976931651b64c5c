package extsort

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"
	"syscall"

	extsorterr "github.com/tamirms/extsort/errors"
)

// defaultMaxChunkBytes is the in-memory budget per chunk when SortConfig
// leaves MaxChunkBytes unset.
const defaultMaxChunkBytes = 2048 << 20

// SortConfig configures a Sort run.
type SortConfig struct {
	// InputPath is the line-oriented text file to sort. Required.
	InputPath string
	// OutputPath is where the sorted result is written. Required.
	OutputPath string
	// TempDir holds intermediate chunk files during the run. Required.
	// Created if it does not already exist; removed again when the run
	// ends, on success or failure, if the directory is then empty.
	TempDir string
	// MaxChunkBytes bounds the estimated in-memory size of one chunk before
	// it is sorted and spilled to disk. Defaults to 2 GiB.
	MaxChunkBytes int64
	// Diagnostics receives warnings (invalid lines, cleanup failures). May
	// be nil.
	Diagnostics Diagnostics
}

// Sort reads cfg.InputPath, sorts its lines under the Record total order
// (see Compare), and writes the result to cfg.OutputPath. The input is
// never required to fit in memory: it is chunked, each chunk sorted and
// spilled to cfg.TempDir, then merged back together in a single streaming
// pass.
//
// If ctx is cancelled mid-run, Sort returns ctx.Err() wrapped with
// ErrCancelled and removes any partial output, but best-effort leaves
// chunk cleanup to run regardless.
func Sort(ctx context.Context, cfg SortConfig) error {
	diag := orNop(cfg.Diagnostics)

	if cfg.InputPath == "" || strings.TrimSpace(cfg.OutputPath) == "" || strings.TrimSpace(cfg.TempDir) == "" {
		return extsorterr.ErrInvalidArgument
	}
	if _, err := os.Stat(cfg.InputPath); err != nil {
		if os.IsNotExist(err) {
			return extsorterr.ErrInputMissing
		}
		return classifyIOErr("stat input", err)
	}

	maxChunkBytes := cfg.MaxChunkBytes
	if maxChunkBytes <= 0 {
		maxChunkBytes = defaultMaxChunkBytes
	}

	if err := os.MkdirAll(cfg.TempDir, 0o755); err != nil {
		return classifyIOErr("create temp dir", err)
	}

	chunkPaths, chunkErr := chunkInput(ctx, cfg.InputPath, cfg.TempDir, maxChunkBytes, diag)
	defer cleanupChunks(cfg.TempDir, chunkPaths, diag)

	if chunkErr != nil {
		return wrapCancellation(chunkErr)
	}

	if err := writeMergedOutput(ctx, cfg.OutputPath, chunkPaths, diag); err != nil {
		os.Remove(cfg.OutputPath)
		return wrapCancellation(err)
	}

	return nil
}

// writeMergedOutput streams the k-way merge of chunkPaths directly to
// outputPath. When chunkPaths is empty (an input with no parseable lines),
// it still produces an empty output file.
func writeMergedOutput(ctx context.Context, outputPath string, chunkPaths []string, diag Diagnostics) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return classifyIOErr("create output", err)
	}

	w := bufio.NewWriterSize(f, chunkReadBufferSize)
	writeLine := func(rec Record) error {
		if _, err := w.WriteString(rec.Raw); err != nil {
			return classifyIOErr("write output record", err)
		}
		return w.WriteByte('\n')
	}

	mergeErr := mergeChunks(ctx, chunkPaths, writeLine, diag)

	flushErr := w.Flush()
	closeErr := f.Close()

	if mergeErr != nil {
		return mergeErr
	}
	if flushErr != nil {
		return classifyIOErr("flush output", flushErr)
	}
	if closeErr != nil {
		return classifyIOErr("close output", closeErr)
	}
	return nil
}

// cleanupChunks removes every chunk file and, if the directory is now
// empty, the temp directory itself. Failures are reported as warnings,
// never returned: cleanup is best-effort and must not mask the run's real
// result.
func cleanupChunks(tempDir string, chunkPaths []string, diag Diagnostics) {
	for _, path := range chunkPaths {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			diag.Warn("removing chunk file", F("path", path), F("error", err.Error()))
		}
	}
	if err := os.Remove(tempDir); err != nil && !os.IsNotExist(err) && !errors.Is(err, syscall.ENOTEMPTY) {
		diag.Warn("removing temp dir", F("path", tempDir), F("error", err.Error()))
	}
}

// wrapCancellation reports a context cancellation error with ErrCancelled
// so callers can match it regardless of which ctx.Err() value produced it.
func wrapCancellation(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return errors.Join(extsorterr.ErrCancelled, err)
	}
	return err
}
