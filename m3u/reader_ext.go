package m3u

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"strconv"
	"strings"
	"unicode"
)

const (
	headerTag = "#EXTM3U"
	extInfTag = "#EXTINF:"
)

// ExtInfParser parses the text following "#EXTINF:" on a tag line.
type ExtInfParser func(body string) (ExtInf, error)

type ExtOption func(*ExtReader)

// WithExtInfParser replaces the default "<duration>,<name>" tag parser.
// A parser error is reported like an unparseable duration.
func WithExtInfParser(parse ExtInfParser) ExtOption {
	return func(r *ExtReader) {
		r.parseExtInf = parse
	}
}

// ExtReader streams extended M3U entries, each paired with the "#EXTINF:"
// tag that precedes it.
type ExtReader struct {
	lines       lineReader
	parseExtInf ExtInfParser
}

// NewExtReader reads up to and including the "#EXTM3U" header and returns a
// reader positioned just after it. Blank lines before the header are
// skipped. ErrHeaderNotFound is returned if the first other line is not the
// header.
func NewExtReader(r io.Reader, opts ...ExtOption) (*ExtReader, error) {
	reader := &ExtReader{
		lines:       newLineReader(r),
		parseExtInf: ParseExtInf,
	}
	for _, opt := range opts {
		opt(reader)
	}

	if err := reader.readHeader(); err != nil {
		reader.lines.release()
		return nil, err
	}
	return reader, nil
}

func (r *ExtReader) readHeader() error {
	for {
		n, err := r.lines.next()
		if err != nil {
			return fmt.Errorf("m3u: reading header: %w", err)
		}

		line := r.lines.line()
		if bytes.HasPrefix(line, []byte(headerTag)) {
			return nil
		}
		if n != 0 && len(line) == 0 {
			continue
		}
		return ErrHeaderNotFound
	}
}

// Read returns the next tagged entry, or io.EOF when the input is exhausted.
//
// If an entry line shows up where a tag was expected, or the tag cannot be
// parsed, Read returns an *ExtInfNotFoundError carrying that entry. A tag
// that is not followed by any entry before the end of input is dropped and
// Read returns io.EOF.
func (r *ExtReader) Read() (EntryExt, error) {
	var (
		extinf ExtInf
		tagErr error
	)

	for {
		n, err := r.lines.next()
		if err != nil {
			return EntryExt{}, err
		}
		if n == 0 {
			return EntryExt{}, io.EOF
		}

		line := r.lines.line()
		if len(line) == 0 {
			continue
		}
		if line[0] != '#' {
			return EntryExt{}, &ExtInfNotFoundError{Entry: classifyBytes(line)}
		}
		if !bytes.HasPrefix(line, []byte(extInfTag)) {
			continue
		}

		tag := bytes.TrimRightFunc(line[len(extInfTag):], unicode.IsSpace)
		extinf, tagErr = r.parseExtInf(string(tag))
		break
	}

	entry, err := r.lines.nextEntry()
	if err != nil {
		return EntryExt{}, err
	}
	if tagErr != nil {
		return EntryExt{}, &ExtInfNotFoundError{Entry: entry}
	}
	return EntryExt{Entry: entry, ExtInf: extinf}, nil
}

// All returns a single-pass sequence over the remaining tagged entries.
//
// An *ExtInfNotFoundError only concerns one record, so it is yielded and the
// sequence carries on. Any other error is yielded and ends the sequence.
func (r *ExtReader) All() iter.Seq2[EntryExt, error] {
	return func(yield func(EntryExt, error) bool) {
		for {
			entry, err := r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(entry, err) {
				return
			}

			var notFound *ExtInfNotFoundError
			if err != nil && !errors.As(err, &notFound) {
				return
			}
		}
	}
}

// Release hands back the underlying line source. The ExtReader must not be
// used afterwards.
func (r *ExtReader) Release() LineSource {
	return r.lines.release()
}

// Close releases the ExtReader and closes the underlying source if it is an
// io.Closer.
func (r *ExtReader) Close() error {
	return closeSource(r.Release())
}

// ParseExtInf parses the default tag syntax "<duration>,<name>". The
// duration is the text up to the first comma. The name is the trimmed rest,
// or empty when there is no comma.
func ParseExtInf(body string) (ExtInf, error) {
	durationText, name, _ := strings.Cut(body, ",")

	duration, err := ParseDuration(durationText)
	if err != nil {
		return ExtInf{}, err
	}

	return ExtInf{
		Duration: duration,
		Name:     strings.TrimSpace(name),
	}, nil
}

// ParseDuration parses the duration text of an "#EXTINF:" tag. Surrounding
// whitespace is not accepted, nor are NaN and infinities.
func ParseDuration(text string) (float64, error) {
	duration, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("m3u: invalid EXTINF duration %q: %w", text, err)
	}
	if math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, fmt.Errorf("m3u: invalid EXTINF duration %q: not a finite number", text)
	}
	return duration, nil
}
