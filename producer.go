package extsort

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
)

// Batch is a group of records handed from a producer to the writer in one
// channel send. Records is reused across batches via batchPool; callers
// must not retain it past the point they return it (see releaseBatch).
type Batch struct {
	Records []Record
}

// ReusePolicy decides, for the count-th record a single producer has
// generated (1-based), whether that record should repeat the text of an
// earlier record instead of generating new text, and if so which one:
// index is a position into the producer's own history of generated text,
// counted from 0 at the first record. Out-of-range indexes wrap modulo the
// retained history rather than panicking, so a policy can pick any index
// it likes without knowing how much history the producer keeps. This
// models the duplicate lines a real-world input occasionally contains.
type ReusePolicy func(count int) (index int, reuse bool)

// defaultReusePolicy reuses the immediately preceding record roughly once
// every 500 records.
func defaultReusePolicy(count int) (int, bool) {
	if count > 0 && count%500 == 0 {
		return count - 2, true
	}
	return 0, false
}

// textHistoryCap bounds how many texts a producer retains for reuse
// lookups. Records beyond this many generations back are no longer
// individually addressable; a ReusePolicy index older than the cap wraps
// modulo the cap onto whichever newer text now occupies that ring slot.
const textHistoryCap = 4096

// textHistory is a fixed-capacity ring buffer of previously-produced
// record text, indexed by generation order (0 = first record ever seen).
type textHistory struct {
	buf  []string
	seen int
}

func newTextHistory() *textHistory {
	return &textHistory{buf: make([]string, 0, textHistoryCap)}
}

func (h *textHistory) add(text string) {
	if len(h.buf) < textHistoryCap {
		h.buf = append(h.buf, text)
	} else {
		h.buf[h.seen%textHistoryCap] = text
	}
	h.seen++
}

// at resolves a ReusePolicy index to retained text. index is interpreted
// modulo the history actually retained, so any non-negative or negative
// index yields some prior text once at least one record has been
// produced.
func (h *textHistory) at(index int) (string, bool) {
	if len(h.buf) == 0 {
		return "", false
	}
	i := index % len(h.buf)
	if i < 0 {
		i += len(h.buf)
	}
	return h.buf[i], true
}

var wordBank = []string{
	"alpha", "bravo", "charlie", "delta", "echo", "foxtrot", "golf", "hotel",
	"india", "juliet", "kilo", "lima", "mike", "november", "oscar", "papa",
	"quebec", "romeo", "sierra", "tango", "uniform", "victor", "whiskey",
	"xray", "yankee", "zulu", "orbit", "signal", "harbor", "lumen", "cobalt",
	"cinder", "quartz", "meadow", "ridge", "delta", "summit", "basin",
}

// randomText builds free-form record text from wordBank: 1 to 8 words
// joined by single spaces.
func randomText(rng *rand.Rand) string {
	n := 1 + rng.Intn(8)
	words := make([]string, n)
	for i := range words {
		words[i] = wordBank[rng.Intn(len(wordBank))]
	}
	text := words[0]
	for _, w := range words[1:] {
		text += " " + w
	}
	return text
}

// batchPool recycles the backing arrays behind Batch.Records.
var batchPool = sync.Pool{
	New: func() any {
		return make([]Record, 0, 256)
	},
}

// releaseBatch returns a batch's backing array to the pool. Call this once
// the writer has finished consuming b.
func releaseBatch(b Batch) {
	batchPool.Put(b.Records[:0]) //nolint:staticcheck
}

// runProducer generates records in batches of batchSize and sends them on
// out until ctx is cancelled. counter supplies globally unique, strictly
// increasing record numbers shared across every producer in the run, so
// that two producers never emit the same Number.
func runProducer(ctx context.Context, id int, batchSize int, reuse ReusePolicy, counter *atomic.Int64, out chan<- Batch) error {
	rng := rand.New(rand.NewSource(int64(id)*2654435761 + 1))

	history := newTextHistory()
	produced := 0

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		batch := batchPool.Get().([]Record)[:0]
		for len(batch) < batchSize {
			produced++
			n := counter.Add(1)

			var text string
			if index, ok := reuse(produced); ok {
				text, ok = history.at(index)
				if !ok {
					text = randomText(rng)
				}
			} else {
				text = randomText(rng)
			}
			history.add(text)
			batch = append(batch, NewRecord(n, text))
		}

		// Hand the channel a right-sized copy so the pooled buffer goes
		// back to the pool before the send blocks.
		records := make([]Record, len(batch))
		copy(records, batch)
		batchPool.Put(batch[:0]) //nolint:staticcheck

		select {
		case out <- Batch{Records: records}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// producerError wraps the id of the producer that failed, for diagnostics.
type producerError struct {
	id  int
	err error
}

func (e *producerError) Error() string {
	return fmt.Sprintf("producer %d: %v", e.id, e.err)
}

func (e *producerError) Unwrap() error {
	return e.err
}
