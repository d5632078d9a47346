package m3u

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"unicode"

	"github.com/valyala/bytebufferpool"
)

// LineSource is a buffered input that can hand out everything up to the next
// delimiter. *bufio.Reader satisfies it.
type LineSource interface {
	ReadSlice(delim byte) (line []byte, err error)
}

func asLineSource(r io.Reader) LineSource {
	if src, ok := r.(LineSource); ok {
		return src
	}
	return bufio.NewReader(r)
}

// lineReader owns one position in a LineSource plus the buffer lines are
// read into. The buffer is reused between lines.
type lineReader struct {
	src LineSource
	buf *bytebufferpool.ByteBuffer
}

func newLineReader(r io.Reader) lineReader {
	return lineReader{
		src: asLineSource(r),
		buf: bytebufferpool.Get(),
	}
}

// next clears the buffer and reads one line into it, terminator included.
// It returns the number of bytes read; zero means the source is exhausted.
func (lr *lineReader) next() (int, error) {
	lr.buf.Reset()
	for {
		chunk, err := lr.src.ReadSlice('\n')
		_, _ = lr.buf.Write(chunk)

		switch {
		case err == nil, errors.Is(err, io.EOF):
			return lr.buf.Len(), nil
		case errors.Is(err, bufio.ErrBufferFull):
			continue
		default:
			return lr.buf.Len(), &ReadError{Op: "read line", Err: err}
		}
	}
}

// line returns the current line with leading whitespace removed.
func (lr *lineReader) line() []byte {
	return bytes.TrimLeftFunc(lr.buf.B, unicode.IsSpace)
}

func (lr *lineReader) release() LineSource {
	if lr.buf != nil {
		bytebufferpool.Put(lr.buf)
		lr.buf = nil
	}
	return lr.src
}

// nextEntry skips blank and "#" lines and classifies the first line that is
// neither. It returns io.EOF once the source is exhausted.
func (lr *lineReader) nextEntry() (Entry, error) {
	for {
		n, err := lr.next()
		if err != nil {
			return Entry{}, err
		}
		if n == 0 {
			return Entry{}, io.EOF
		}

		line := lr.line()
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		return classifyBytes(line), nil
	}
}

func classifyBytes(line []byte) Entry {
	return Classify(string(bytes.TrimRightFunc(line, unicode.IsSpace)))
}
