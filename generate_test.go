package extsort

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	extsorterr "github.com/tamirms/extsort/errors"
)

func TestGenerateProducesApproximateSize(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "gen.txt")

	target := int64(64 * 1024)
	err := Generate(context.Background(), GenerateConfig{
		OutputPath:      output,
		TargetBytes:     target,
		Workers:         4,
		ChannelCapacity: 16,
		BatchSize:       32,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	info, err := os.Stat(output)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() < target {
		t.Errorf("expected at least %d bytes, got %d", target, info.Size())
	}
	// Allow the pipeline to overshoot by at most a few batches' worth.
	if info.Size() > target*2 {
		t.Errorf("output grew unexpectedly large: %d bytes for target %d", info.Size(), target)
	}
}

func TestGenerateOutputIsParseableAndSorted(t *testing.T) {
	dir := t.TempDir()
	generated := filepath.Join(dir, "gen.txt")
	sorted := filepath.Join(dir, "sorted.txt")
	tempDir := filepath.Join(dir, "tmp")

	if err := Generate(context.Background(), GenerateConfig{
		OutputPath:  generated,
		TargetBytes: 32 * 1024,
		Workers:     2,
	}); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	data, err := os.ReadFile(generated)
	if err != nil {
		t.Fatalf("read generated: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected non-empty generated output")
	}

	if err := Sort(context.Background(), SortConfig{
		InputPath:  generated,
		OutputPath: sorted,
		TempDir:    tempDir,
	}); err != nil {
		t.Fatalf("Sort generated output: %v", err)
	}

	got := readLines(t, sorted)
	if len(got) == 0 {
		t.Fatal("expected sorted output to contain records")
	}
	for i := 1; i < len(got); i++ {
		a, ok1 := ParseLine(got[i-1])
		b, ok2 := ParseLine(got[i])
		if !ok1 || !ok2 {
			t.Fatalf("unparseable sorted line at %d", i)
		}
		if Compare(a, b) > 0 {
			t.Fatalf("sorted output out of order at line %d: %q before %q", i, got[i-1], got[i])
		}
	}
}

func TestGenerateInvalidArgument(t *testing.T) {
	if err := Generate(context.Background(), GenerateConfig{TargetBytes: 10}); !errors.Is(err, extsorterr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for missing output path, got %v", err)
	}
	if err := Generate(context.Background(), GenerateConfig{OutputPath: "x.txt"}); !errors.Is(err, extsorterr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for non-positive target, got %v", err)
	}
}
