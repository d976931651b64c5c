package extsort

import (
	"bufio"
	"container/heap"
	"context"
	"os"
)

// chunkReader reads one sorted chunk file, tracking the current record and
// whether another record is available. A chunkReader that encounters an
// unparseable line abandons the rest of its file rather than erroring out
// the whole merge: one corrupt chunk shouldn't sink every other chunk's
// contribution to the result.
type chunkReader struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	current Record
	hasNext bool
	diag    Diagnostics
}

func newChunkReader(path string, diag Diagnostics) (*chunkReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, classifyIOErr("open chunk file", err)
	}
	fadviseSequential(int(f.Fd()), 0, 0)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, chunkReadBufferSize), maxLineBytes)

	r := &chunkReader{path: path, file: f, scanner: scanner, diag: orNop(diag)}
	r.advance()
	return r, nil
}

// advance reads the next line and makes it the current record, or marks
// the reader exhausted at EOF. Invalid lines inside a chunk file should not
// occur (this module wrote every chunk itself), but a reader abandons its
// tail rather than failing the whole merge if one turns up, e.g. from a
// hand-edited temp file.
func (r *chunkReader) advance() {
	for r.scanner.Scan() {
		line := r.scanner.Text()
		rec, ok := ParseLine(line)
		if !ok {
			r.diag.Warn("abandoning chunk reader at unparseable line", F("path", r.path), F("line", line))
			r.hasNext = false
			return
		}
		r.current = rec
		r.hasNext = true
		return
	}
	r.hasNext = false
}

func (r *chunkReader) Close() error {
	fadviseDontNeed(int(r.file.Fd()), 0, 0)
	return r.file.Close()
}

// mergeHeapItem is one entry in the k-way merge heap: a candidate record
// plus the index of the reader that produced it.
type mergeHeapItem struct {
	record    Record
	readerIdx int
}

// mergeHeap implements container/heap.Interface, ordering candidates by the
// Record total order (see Compare) rather than a single scalar key.
type mergeHeap []*mergeHeapItem

func (h mergeHeap) Len() int { return len(h) }
func (h mergeHeap) Less(i, j int) bool {
	return Compare(h[i].record, h[j].record) < 0
}
func (h mergeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *mergeHeap) Push(x any) {
	*h = append(*h, x.(*mergeHeapItem))
}

func (h *mergeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// mergeChunks performs a k-way merge of the sorted chunk files at
// chunkPaths and streams the result, one line at a time, to write. Every
// reader it opens is closed on every exit path, including cancellation and
// mid-merge errors.
func mergeChunks(ctx context.Context, chunkPaths []string, write func(Record) error, diag Diagnostics) error {
	diag = orNop(diag)

	if len(chunkPaths) == 0 {
		return nil
	}

	readers := make([]*chunkReader, 0, len(chunkPaths))
	defer func() {
		for _, r := range readers {
			if err := r.Close(); err != nil {
				diag.Warn("closing chunk reader", F("path", r.path), F("error", err.Error()))
			}
		}
	}()

	for _, path := range chunkPaths {
		r, err := newChunkReader(path, diag)
		if err != nil {
			return err
		}
		readers = append(readers, r)
	}

	h := &mergeHeap{}
	heap.Init(h)
	for i, r := range readers {
		if r.hasNext {
			heap.Push(h, &mergeHeapItem{record: r.current, readerIdx: i})
		}
	}

	for h.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		item := heap.Pop(h).(*mergeHeapItem)
		if err := write(item.record); err != nil {
			return err
		}

		r := readers[item.readerIdx]
		r.advance()
		if r.hasNext {
			heap.Push(h, &mergeHeapItem{record: r.current, readerIdx: item.readerIdx})
		}
	}

	return nil
}
