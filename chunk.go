package extsort

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// chunkReadBufferSize is the buffered-reader size used for both the input
// scan and chunk file writes.
const chunkReadBufferSize = 64 * 1024

// maxLineBytes bounds a single line's length. A line longer than this is
// treated as an I/O error rather than silently truncated or left to grow
// the scanner's buffer without limit.
const maxLineBytes = 1 << 20

// chunkFileName returns the canonical temp chunk filename for index i:
// "chunk_{decimal-index}.tmp".
func chunkFileName(i int) string {
	return fmt.Sprintf("chunk_%d.tmp", i)
}

// chunkInput streams inputPath line by line, accumulating valid records
// until the estimated memory budget maxChunkBytes is reached, sorts the
// accumulated chunk, and flushes it to a numbered temp file under tempDir.
// It returns the ordered list of chunk paths created (possibly empty).
//
// On cancellation, the in-progress chunk is abandoned (not flushed) and the
// chunks already produced are returned alongside the cancellation error, so
// the caller can still clean them up.
func chunkInput(ctx context.Context, inputPath, tempDir string, maxChunkBytes int64, diag Diagnostics) ([]string, error) {
	diag = orNop(diag)

	f, err := os.Open(inputPath)
	if err != nil {
		return nil, classifyIOErr("open input", err)
	}
	defer f.Close()

	fadviseSequential(int(f.Fd()), 0, 0)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, chunkReadBufferSize), maxLineBytes)

	var (
		chunkPaths []string
		records    []Record
		estimate   int64
		nextIndex  int
	)

	flush := func() error {
		if len(records) == 0 {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		sort.Slice(records, func(i, j int) bool {
			return Compare(records[i], records[j]) < 0
		})
		path, err := writeChunk(tempDir, nextIndex, records)
		if err != nil {
			return err
		}
		nextIndex++
		chunkPaths = append(chunkPaths, path)
		records = nil
		estimate = 0
		return nil
	}

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return chunkPaths, err
		}

		line := scanner.Text()
		rec, ok := ParseLine(line)
		if !ok {
			diag.Warn("skipping invalid line", F("line", line))
			continue
		}

		records = append(records, rec)
		estimate += estimatedSize(rec)

		if estimate >= maxChunkBytes {
			if err := flush(); err != nil {
				return chunkPaths, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return chunkPaths, classifyIOErr("read input", err)
	}

	if err := flush(); err != nil {
		return chunkPaths, err
	}

	return chunkPaths, nil
}

// writeChunk sorts nothing (the caller already sorted records) and writes
// each record's Raw value as one line to {tempDir}/chunk_{i}.tmp.
func writeChunk(tempDir string, index int, records []Record) (string, error) {
	path := filepath.Join(tempDir, chunkFileName(index))

	f, err := os.Create(path)
	if err != nil {
		return "", classifyIOErr("create chunk file", err)
	}

	w := bufio.NewWriterSize(f, chunkReadBufferSize)
	for _, rec := range records {
		if _, err := w.WriteString(rec.Raw); err != nil {
			f.Close()
			os.Remove(path)
			return "", classifyIOErr("write chunk record", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			os.Remove(path)
			return "", classifyIOErr("write chunk newline", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(path)
		return "", classifyIOErr("flush chunk file", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", classifyIOErr("close chunk file", err)
	}

	return path, nil
}
