package postlib

import (
	"errors"
	"io"
)

// FileChunk is one contiguous segment of a media file, numbered by a
// zero-based index. A chunk lives only until the APPEND call that consumes
// it; the pipeline keeps at most one chunk resident at a time.
type FileChunk struct {
	Index int
	Size  int
	Data  []byte
}

// Chunker splits a resolved file into fixed-size chunks in file order, the
// final chunk sized to the remainder. It reads the underlying stream exactly
// once, front to back; a consumed Chunker cannot be restarted.
type Chunker struct {
	r         io.Reader
	total     int64
	chunkSize int64
	read      int64
	next      int
	done      bool
}

// NewChunker creates a single-pass chunk iterator over the file's stream,
// starting at its current position.
func NewChunker(info *FileInfo, chunkSize int64) (*Chunker, error) {
	if chunkSize <= 0 {
		return nil, errors.New("chunk size must be positive")
	}
	return &Chunker{
		r:         info,
		total:     info.Size,
		chunkSize: chunkSize,
	}, nil
}

// Count returns the total number of chunks the sequence will yield.
func (c *Chunker) Count() int {
	n := c.total / c.chunkSize
	if c.total%c.chunkSize != 0 {
		n++
	}
	return int(n)
}

// Next returns the next chunk in strictly increasing index order. It
// returns io.EOF once the sequence is exhausted and ErrChunkerConsumed on
// any call after that.
func (c *Chunker) Next() (*FileChunk, error) {
	if c.done {
		return nil, ErrChunkerConsumed
	}
	remaining := c.total - c.read
	if remaining <= 0 {
		c.done = true
		return nil, io.EOF
	}
	size := c.chunkSize
	if remaining < size {
		size = remaining
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(c.r, buf); err != nil {
		c.done = true
		return nil, err
	}
	chunk := &FileChunk{
		Index: c.next,
		Size:  int(size),
		Data:  buf,
	}
	c.next++
	c.read += size
	return chunk, nil
}
