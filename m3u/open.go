package m3u

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"m3u-reader/logger"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// DefaultBufferSize is the line source buffer used by Open and OpenExt.
// Longer lines are still read whole.
const DefaultBufferSize = 64 * 1024

// fileSource is a buffered playlist file. Closing it closes every layer
// stacked on top of the file, innermost last.
type fileSource struct {
	*bufio.Reader
	closers []func() error
}

func (f *fileSource) Close() error {
	var firstErr error
	for i := len(f.closers) - 1; i >= 0; i-- {
		if err := f.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	f.closers = nil
	return firstErr
}

// OpenSource opens a playlist file for buffered reading; the result also
// implements LineSource. Files ending in ".zst" or ".gz" are decompressed on
// the fly. The caller must Close it.
func OpenSource(name string) (io.ReadCloser, error) {
	return OpenSourceSize(name, DefaultBufferSize)
}

// OpenSourceSize is OpenSource with a buffer of bufferSize bytes. A size of
// zero or less selects DefaultBufferSize.
func OpenSourceSize(name string, bufferSize int) (io.ReadCloser, error) {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("m3u: opening playlist: %w", err)
	}

	src := &fileSource{closers: []func() error{file.Close}}
	var r io.Reader = file

	switch strings.ToLower(filepath.Ext(name)) {
	case ".zst":
		logger.Default.Debugf("Decompressing zstd playlist: %s", name)
		decoder, err := zstd.NewReader(file)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("m3u: creating zstd decoder: %w", err)
		}
		src.closers = append(src.closers, func() error {
			decoder.Close()
			return nil
		})
		r = decoder
	case ".gz":
		logger.Default.Debugf("Decompressing gzip playlist: %s", name)
		gz, err := gzip.NewReader(file)
		if err != nil {
			_ = src.Close()
			return nil, fmt.Errorf("m3u: creating gzip reader: %w", err)
		}
		src.closers = append(src.closers, gz.Close)
		r = gz
	}

	src.Reader = bufio.NewReaderSize(r, bufferSize)
	return src, nil
}

// Open opens the named playlist and returns a plain Reader over it. Closing
// the Reader closes the file.
func Open(name string) (*Reader, error) {
	src, err := OpenSource(name)
	if err != nil {
		return nil, err
	}
	return NewReader(src), nil
}

// OpenExt opens the named playlist and returns an ExtReader over it. The
// file is closed again if the "#EXTM3U" header is missing.
func OpenExt(name string, opts ...ExtOption) (*ExtReader, error) {
	src, err := OpenSource(name)
	if err != nil {
		return nil, err
	}

	reader, err := NewExtReader(src, opts...)
	if err != nil {
		_ = src.Close()
		return nil, err
	}
	return reader, nil
}
