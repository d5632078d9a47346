package m3u

import "net/url"

// Entry is a single playable reference read from a playlist.
//
// Exactly one of URL or Path is set. URL is only used for references that
// carry a host; everything else is kept verbatim as Path.
type Entry struct {
	URL  *url.URL
	Path string
}

func (e Entry) IsURL() bool {
	return e.URL != nil
}

func (e Entry) String() string {
	if e.URL != nil {
		return e.URL.String()
	}
	return e.Path
}

// ExtInf is the metadata carried by an "#EXTINF:" tag.
type ExtInf struct {
	Duration float64
	Name     string

	// Attributes holds key="value" pairs for tag parsers that understand
	// them. The default parser leaves it nil.
	Attributes map[string]string
}

// EntryExt pairs an Entry with the "#EXTINF:" tag that preceded it.
type EntryExt struct {
	Entry  Entry
	ExtInf ExtInf
}
