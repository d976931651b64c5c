package extsort

import (
	"context"
	"errors"
	"testing"
)

var errTestBoom = errors.New("boom")

func TestMergeChunksOrdering(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()

	path1, err := writeChunk(dir1, 0, []Record{
		NewRecord(1, "alpha"),
		NewRecord(2, "charlie"),
	})
	if err != nil {
		t.Fatalf("writeChunk: %v", err)
	}
	path2, err := writeChunk(dir2, 0, []Record{
		NewRecord(1, "bravo"),
		NewRecord(1, "delta"),
	})
	if err != nil {
		t.Fatalf("writeChunk: %v", err)
	}

	var got []Record
	err = mergeChunks(context.Background(), []string{path1, path2}, func(r Record) error {
		got = append(got, r)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("mergeChunks: %v", err)
	}

	want := []string{"alpha", "bravo", "charlie", "delta"}
	if len(got) != len(want) {
		t.Fatalf("got %d records, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Text != w {
			t.Errorf("record %d: got %q, want %q", i, got[i].Text, w)
		}
	}
}

func TestMergeChunksEmptyInput(t *testing.T) {
	var got []Record
	err := mergeChunks(context.Background(), nil, func(r Record) error {
		got = append(got, r)
		return nil
	}, nil)
	if err != nil {
		t.Fatalf("mergeChunks: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestMergeChunksClosesReadersOnError(t *testing.T) {
	dir := t.TempDir()
	path, err := writeChunk(dir, 0, []Record{NewRecord(1, "only")})
	if err != nil {
		t.Fatalf("writeChunk: %v", err)
	}

	err = mergeChunks(context.Background(), []string{path}, func(r Record) error {
		return errTestBoom
	}, nil)
	if err != errTestBoom {
		t.Fatalf("expected write error to propagate, got %v", err)
	}
}
