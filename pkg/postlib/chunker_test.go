package postlib

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func tempMediaFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		t.Fatalf("writing temp media file: %v", err)
	}
	return p
}

func makeData(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

func TestNewChunkerRejectsNonPositiveChunkSize(t *testing.T) {
	p := tempMediaFile(t, "a.bin", []byte("abc"))
	info, err := ResolveFile(nil, p)
	if err != nil {
		t.Fatalf("ResolveFile: %v", err)
	}
	defer info.Close()

	for _, size := range []int64{0, -1} {
		if _, err := NewChunker(info, size); err == nil {
			t.Errorf("NewChunker with chunk size %d: expected error", size)
		}
	}
}

func TestChunkerCount(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		chunkSize int64
		want      int
	}{
		{name: "exact multiple", total: 4096, chunkSize: 1024, want: 4},
		{name: "with remainder", total: 4097, chunkSize: 1024, want: 5},
		{name: "single partial chunk", total: 10, chunkSize: 1024, want: 1},
		{name: "empty file", total: 0, chunkSize: 1024, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Chunker{total: tt.total, chunkSize: tt.chunkSize}
			if got := c.Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestChunkerSequence(t *testing.T) {
	data := makeData(2500)
	p := tempMediaFile(t, "seq.bin", data)
	info, err := ResolveFile(nil, p)
	if err != nil {
		t.Fatalf("ResolveFile: %v", err)
	}
	defer info.Close()

	chunker, err := NewChunker(info, 1024)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	if got := chunker.Count(); got != 3 {
		t.Fatalf("Count() = %d, want 3", got)
	}

	var rebuilt bytes.Buffer
	wantSizes := []int{1024, 1024, 452}
	for i := 0; ; i++ {
		chunk, err := chunker.Next()
		if err == io.EOF {
			if i != len(wantSizes) {
				t.Fatalf("sequence ended after %d chunks, want %d", i, len(wantSizes))
			}
			break
		}
		if err != nil {
			t.Fatalf("Next(): %v", err)
		}
		if chunk.Index != i {
			t.Errorf("chunk %d has index %d", i, chunk.Index)
		}
		if chunk.Size != wantSizes[i] {
			t.Errorf("chunk %d size = %d, want %d", i, chunk.Size, wantSizes[i])
		}
		if chunk.Size != len(chunk.Data) {
			t.Errorf("chunk %d: Size %d does not match len(Data) %d", i, chunk.Size, len(chunk.Data))
		}
		rebuilt.Write(chunk.Data)
	}

	if !bytes.Equal(rebuilt.Bytes(), data) {
		t.Error("concatenated chunks do not reproduce the original bytes")
	}
}

func TestChunkerConsumed(t *testing.T) {
	p := tempMediaFile(t, "small.bin", []byte("hello"))
	info, err := ResolveFile(nil, p)
	if err != nil {
		t.Fatalf("ResolveFile: %v", err)
	}
	defer info.Close()

	chunker, err := NewChunker(info, 1024)
	if err != nil {
		t.Fatalf("NewChunker: %v", err)
	}
	if _, err = chunker.Next(); err != nil {
		t.Fatalf("first Next(): %v", err)
	}
	if _, err = chunker.Next(); err != io.EOF {
		t.Fatalf("second Next() = %v, want io.EOF", err)
	}
	for i := 0; i < 2; i++ {
		if _, err = chunker.Next(); !errors.Is(err, ErrChunkerConsumed) {
			t.Errorf("Next() after exhaustion = %v, want ErrChunkerConsumed", err)
		}
	}
}
