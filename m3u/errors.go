package m3u

import (
	"errors"
	"fmt"
)

// ErrHeaderNotFound is returned by NewExtReader when the first non-blank
// line of the input is not the "#EXTM3U" header.
var ErrHeaderNotFound = errors.New(`m3u: the "#EXTM3U" header was not found`)

// ExtInfNotFoundError reports an entry that was not preceded by a usable
// "#EXTINF:" tag. Either the tag was omitted or its duration could not be
// parsed. The entry itself was read successfully and is kept so callers can
// accept it as an untagged entry.
type ExtInfNotFoundError struct {
	Entry Entry
}

func (e *ExtInfNotFoundError) Error() string {
	return fmt.Sprintf(`m3u: the "#EXTINF:" tag was not found or was incorrectly formatted (entry: %s)`, e.Entry)
}

// ReadError wraps a failure of the underlying line source.
type ReadError struct {
	Op  string
	Err error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("m3u: %s: %v", e.Op, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
