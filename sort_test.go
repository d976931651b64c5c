package extsort

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	extsorterr "github.com/tamirms/extsort/errors"
)

func TestSortBasic(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	tempDir := filepath.Join(dir, "tmp")

	writeLines(t, input, []string{
		"10. zebra",
		"1. apple",
		"5. mango",
		"1. apple",
	})

	err := Sort(context.Background(), SortConfig{
		InputPath:     input,
		OutputPath:    output,
		TempDir:       tempDir,
		MaxChunkBytes: 1024,
	})
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}

	got := readLines(t, output)
	want := []string{"1. apple", "1. apple", "5. mango", "10. zebra"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSortManyChunks(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	tempDir := filepath.Join(dir, "tmp")

	n := 500
	lines := make([]string, n)
	for i := 0; i < n; i++ {
		// Descending numbers with identical text so the result is
		// deterministic: ascending by Number within equal Text.
		lines[i] = NewRecord(int64(n-i), "same").Raw
	}
	writeLines(t, input, lines)

	err := Sort(context.Background(), SortConfig{
		InputPath:     input,
		OutputPath:    output,
		TempDir:       tempDir,
		MaxChunkBytes: 256, // force many small chunks
	})
	if err != nil {
		t.Fatalf("Sort: %v", err)
	}

	got := readLines(t, output)
	if len(got) != n {
		t.Fatalf("got %d lines, want %d", len(got), n)
	}
	for i, line := range got {
		rec, ok := ParseLine(line)
		if !ok {
			t.Fatalf("line %d unparseable: %q", i, line)
		}
		if rec.Number != int64(i+1) {
			t.Errorf("line %d: got number %d, want %d", i, rec.Number, i+1)
		}
	}

	entries, err := os.ReadDir(tempDir)
	if err == nil && len(entries) != 0 {
		t.Errorf("expected temp dir cleaned up, found %d entries", len(entries))
	}
}

func TestSortEmptyInput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	tempDir := filepath.Join(dir, "tmp")

	if err := os.WriteFile(input, nil, 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	if err := Sort(context.Background(), SortConfig{
		InputPath:  input,
		OutputPath: output,
		TempDir:    tempDir,
	}); err != nil {
		t.Fatalf("Sort: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("expected empty output, got %d bytes", len(data))
	}
}

func TestSortMissingInput(t *testing.T) {
	dir := t.TempDir()
	err := Sort(context.Background(), SortConfig{
		InputPath:  filepath.Join(dir, "does-not-exist.txt"),
		OutputPath: filepath.Join(dir, "out.txt"),
		TempDir:    filepath.Join(dir, "tmp"),
	})
	if !errors.Is(err, extsorterr.ErrInputMissing) {
		t.Fatalf("expected ErrInputMissing, got %v", err)
	}
}

func TestSortInvalidArgument(t *testing.T) {
	err := Sort(context.Background(), SortConfig{})
	if !errors.Is(err, extsorterr.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestSortCancellation(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	output := filepath.Join(dir, "out.txt")
	tempDir := filepath.Join(dir, "tmp")

	lines := make([]string, 2000)
	for i := range lines {
		lines[i] = NewRecord(int64(i), "filler text for cancellation test").Raw
	}
	writeLines(t, input, lines)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Sort(ctx, SortConfig{
		InputPath:  input,
		OutputPath: output,
		TempDir:    tempDir,
	})
	if !errors.Is(err, extsorterr.ErrCancelled) {
		t.Fatalf("expected ErrCancelled, got %v", err)
	}
	if _, statErr := os.Stat(output); statErr == nil {
		t.Errorf("expected no partial output file to remain")
	}
}
