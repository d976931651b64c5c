package extsort

import (
	"bufio"
	"context"
	"os"

	extsorterr "github.com/tamirms/extsort/errors"
)

// progressMinInterval is the floor on how many bytes must be written
// between progress reports, so tiny targets don't flood diagnostics.
const progressMinInterval = 1 << 20

// progressFraction reports progress roughly every 1/20th of the target.
const progressFraction = 20

// runWriter drains batches from in until either the channel is closed (all
// producers finished normally) or ctx is cancelled, writing each record to
// outputPath in the order received. Once the stream reaches targetBytes it
// calls cancel to stop the producers and returns without reading further
// batches; producers blocked on a send observe the cancellation themselves,
// so none of them blocks forever. The file is preallocated to targetBytes
// and trimmed back to the bytes actually written before it is closed.
//
// runWriter always calls cancel before returning, even on the success
// path, so the caller never needs a second cancellation signal.
func runWriter(ctx context.Context, outputPath string, targetBytes int64, in <-chan Batch, cancel context.CancelFunc, diag Diagnostics) error {
	diag = orNop(diag)
	defer cancel()

	if targetBytes <= 0 {
		return extsorterr.ErrInvalidArgument
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return classifyIOErr("create output", err)
	}

	if err := fallocateFile(f, targetBytes); err != nil {
		if isDiskFull(err) {
			f.Close()
			return classifyIOErr("preallocate output", err)
		}
		// Preallocation is otherwise best-effort: some filesystems don't
		// support it at all, and that alone is no reason to fail a run
		// that can still succeed by growing the file as it's written.
		diag.Warn("preallocating output file", F("path", outputPath), F("error", err.Error()))
	}

	w := bufio.NewWriterSize(f, chunkReadBufferSize)

	var written int64
	nextReport := progressInterval(targetBytes)
	reached := false

	writeErr := func() error {
		for {
			select {
			case batch, ok := <-in:
				if !ok {
					return nil
				}
				for _, rec := range batch.Records {
					if _, err := w.WriteString(rec.Raw); err != nil {
						releaseBatch(batch)
						return classifyIOErr("write generated record", err)
					}
					if err := w.WriteByte('\n'); err != nil {
						releaseBatch(batch)
						return classifyIOErr("write generated newline", err)
					}
					written += int64(len(rec.Raw)) + 1
				}
				releaseBatch(batch)

				if written >= nextReport {
					diag.Progress("generation progress", F("bytes", written), F("target", targetBytes))
					nextReport += progressInterval(targetBytes)
				}

				if !reached && written >= targetBytes {
					reached = true
					cancel()
					return nil
				}
			case <-ctx.Done():
				// Cancellation is the writer's normal stop condition,
				// whether it triggered it itself on reaching targetBytes
				// or it arrived externally (CLI SIGINT, caller timeout).
				return nil
			}
		}
	}()

	flushErr := w.Flush()
	var truncErr error
	if flushErr == nil {
		// Preallocation extended the file to targetBytes; a run that stops
		// short of it must not leave that padding behind.
		truncErr = f.Truncate(written)
	}
	closeErr := f.Close()

	if writeErr != nil {
		return writeErr
	}
	if flushErr != nil {
		return classifyIOErr("flush output", flushErr)
	}
	if truncErr != nil {
		return classifyIOErr("truncate output", truncErr)
	}
	if closeErr != nil {
		return classifyIOErr("close output", closeErr)
	}
	return nil
}

func progressInterval(targetBytes int64) int64 {
	step := targetBytes / progressFraction
	if step < progressMinInterval {
		step = progressMinInterval
	}
	return step
}
