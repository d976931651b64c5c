// Package extsort implements external merge sort over line-oriented text
// files with bounded RAM usage, plus a bounded producer/consumer pipeline
// for generating synthetic input at scale.
//
// ExtSort is designed for sorting files that exceed available memory: it
// streams the input into memory-bounded chunks, sorts each chunk, spills it
// to disk, and streams a k-way merge of the sorted chunks to the final
// output.
//
// # Basic Usage
//
// Sorting a file:
//
//	err := extsort.Sort(ctx, extsort.SortConfig{
//	    InputPath:     "input.txt",
//	    OutputPath:    "output.txt",
//	    TempDir:       "/tmp/extsort-run",
//	    MaxChunkBytes: 256 << 20,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Generating synthetic input:
//
//	err := extsort.Generate(ctx, extsort.GenerateConfig{
//	    OutputPath:  "generated.txt",
//	    TargetBytes: 20 << 30,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Package Structure
//
//   - Record model: record.go (Record, ParseLine, Compare)
//   - Sort pipeline: chunk.go (chunking phase), merge.go (k-way merge),
//     sort.go (Sort orchestrator)
//   - Generation pipeline: producer.go (line producers), writer.go (file
//     writer/consumer), generate.go (Generate orchestrator)
//   - Errors: errors/errors.go (exported sentinels)
//   - Diagnostics: diagnostics.go (warning/progress sink)
//   - Platform: fallocate_*.go, fadvise_*.go (OS-specific optimizations)
package extsort
