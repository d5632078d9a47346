package m3u

import (
	"errors"
	"io"
	"iter"
)

// Reader streams plain M3U entries from a line source.
//
// Lines are read on demand and no further than needed for the next entry.
// Every line starting with "#" is a comment to a Reader, EXTINF tags
// included. A Reader must not be used from more than one goroutine.
type Reader struct {
	lines lineReader
}

// NewReader returns a Reader over r. If r does not implement LineSource it
// is wrapped in a bufio.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{lines: newLineReader(r)}
}

// Read returns the next entry, or io.EOF when the input is exhausted.
// Failures of the underlying source are returned as *ReadError.
func (r *Reader) Read() (Entry, error) {
	return r.lines.nextEntry()
}

// All returns a single-pass sequence over the remaining entries. The
// sequence ends at the end of input or right after yielding a read error.
func (r *Reader) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for {
			entry, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}

// Release hands back the underlying line source, including any data it has
// buffered but not yet returned. The Reader must not be used afterwards.
func (r *Reader) Release() LineSource {
	return r.lines.release()
}

// Close releases the Reader and closes the underlying source if it is an
// io.Closer.
func (r *Reader) Close() error {
	return closeSource(r.Release())
}

func closeSource(src LineSource) error {
	if c, ok := src.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
