package scan

import "m3u-reader/iptv"

const (
	KindURL  = "url"
	KindPath = "path"
)

// Record is one playlist entry as reported by the scanner.
type Record struct {
	Source   string        `json:"source"`
	Kind     string        `json:"kind"`
	Location string        `json:"location"`
	Duration *float64      `json:"duration,omitempty"`
	Name     string        `json:"name,omitempty"`
	Untagged bool          `json:"untagged,omitempty"`
	Channel  *iptv.Channel `json:"channel,omitempty"`
}

// Result holds every record read from one playlist.
type Result struct {
	Source   string   `json:"source"`
	Records  []Record `json:"records"`
	Untagged int      `json:"untagged"`
	Err      error    `json:"-"`
}
