package m3u

import "net/url"

// Classify turns a trimmed playlist line into an Entry.
//
// The line becomes a URL entry only when it parses as an absolute URL with a
// non-empty host. Hostless URLs such as "file:relative/path" are treated as
// paths.
func Classify(line string) Entry {
	if u, err := url.Parse(line); err == nil && u.Scheme != "" && u.Hostname() != "" {
		return Entry{URL: u}
	}
	return Entry{Path: line}
}
