package extsort

import (
	"context"
	"runtime"
	"sync/atomic"

	extsorterr "github.com/tamirms/extsort/errors"
	"golang.org/x/sync/errgroup"
)

// defaultChannelCapacity bounds the number of in-flight batches buffered
// between producers and the writer.
const defaultChannelCapacity = 256

// defaultBatchSize is the number of records per Batch when GenerateConfig
// leaves BatchSize unset.
const defaultBatchSize = 256

// GenerateConfig configures a Generate run.
type GenerateConfig struct {
	// OutputPath is the file to create and fill. Required.
	OutputPath string
	// TargetBytes is the approximate output size at which generation
	// stops. Must be positive.
	TargetBytes int64
	// Workers is the number of concurrent producer goroutines. Defaults to
	// runtime.GOMAXPROCS(0).
	Workers int
	// ChannelCapacity bounds the number of in-flight batches buffered
	// between producers and the writer. Defaults to 256.
	ChannelCapacity int
	// BatchSize is the number of records each producer accumulates before
	// sending a Batch. Defaults to 256.
	BatchSize int
	// ReusePolicy decides when, and from how far back, a producer repeats
	// an earlier record's text instead of generating new text. Defaults
	// to reusing the immediately preceding record roughly 1 in 500 times.
	ReusePolicy ReusePolicy
	// Diagnostics receives progress and warning messages. May be nil.
	Diagnostics Diagnostics
}

// Generate fills cfg.OutputPath with synthetic records until it reaches
// roughly cfg.TargetBytes, using a bounded multi-producer/single-consumer
// pipeline: cfg.Workers goroutines generate batches of records concurrently
// and send them on a capacity-bounded channel; one writer goroutine drains
// the channel in receive order and owns the decision to stop the run.
//
// Producers and the writer share a single context.CancelFunc: the writer
// calls it once the target size is reached, and every producer observes it
// on its next channel send, so the pipeline winds down without any
// producer blocking forever on a writer that has already stopped reading.
func Generate(ctx context.Context, cfg GenerateConfig) error {
	diag := orNop(cfg.Diagnostics)

	if cfg.OutputPath == "" {
		return extsorterr.ErrInvalidArgument
	}
	if cfg.TargetBytes <= 0 {
		return extsorterr.ErrInvalidArgument
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	channelCapacity := cfg.ChannelCapacity
	if channelCapacity <= 0 {
		channelCapacity = defaultChannelCapacity
	}
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	reuse := cfg.ReusePolicy
	if reuse == nil {
		reuse = defaultReusePolicy
	}

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	batches := make(chan Batch, channelCapacity)

	group, groupCtx := errgroup.WithContext(workerCtx)
	var counter atomic.Int64
	for i := 0; i < workers; i++ {
		id := i
		group.Go(func() error {
			err := runProducer(groupCtx, id, batchSize, reuse, &counter, batches)
			if err != nil && groupCtx.Err() == nil {
				return &producerError{id: id, err: err}
			}
			return nil
		})
	}

	writerDone := make(chan error, 1)
	go func() {
		writerDone <- runWriter(workerCtx, cfg.OutputPath, cfg.TargetBytes, batches, cancel, diag)
	}()

	groupErr := group.Wait()
	close(batches)
	writerErr := <-writerDone

	if writerErr != nil {
		return wrapCancellation(writerErr)
	}
	if groupErr != nil && workerCtx.Err() == nil {
		return groupErr
	}
	return nil
}
