package iptv

import (
	"encoding/hex"

	"m3u-reader/m3u"

	"github.com/gosimple/slug"
	"golang.org/x/crypto/sha3"
)

// Channel is the typed view of an IPTV playlist record.
type Channel struct {
	ID       string  `json:"id"`
	Slug     string  `json:"slug"`
	Title    string  `json:"title"`
	TvgID    string  `json:"tvg_id,omitempty"`
	TvgChNo  string  `json:"tvg_chno,omitempty"`
	TvgType  string  `json:"tvg_type,omitempty"`
	LogoURL  string  `json:"logo_url,omitempty"`
	Group    string  `json:"group,omitempty"`
	Duration float64 `json:"duration"`
	Location string  `json:"location"`
}

// ChannelFrom maps a tagged entry onto a Channel. The display name after
// the comma wins over tvg-name.
func ChannelFrom(e m3u.EntryExt) Channel {
	ch := Channel{
		Duration: e.ExtInf.Duration,
		Location: e.Entry.String(),
	}

	attrs := e.ExtInf.Attributes
	ch.TvgID = lookup(attrs, "tvg-id")
	ch.TvgChNo = lookup(attrs, "tvg-chno", "channel-id", "channel-number")
	ch.TvgType = lookup(attrs, "tvg-type")
	ch.Group = lookup(attrs, "group-title", "tvg-group")
	ch.LogoURL = lookup(attrs, "tvg-logo")
	ch.Title = lookup(attrs, "tvg-name")

	if e.ExtInf.Name != "" {
		ch.Title = e.ExtInf.Name
	}

	h := sha3.Sum224([]byte(ch.Location))
	ch.ID = hex.EncodeToString(h[:])
	ch.Slug = slug.Make(ch.Title)

	return ch
}

// lookup returns the first non-empty attribute among keys.
func lookup(attrs map[string]string, keys ...string) string {
	for _, key := range keys {
		if value := unquote(attrs[key]); value != "" {
			return value
		}
	}
	return ""
}
