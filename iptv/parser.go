package iptv

import (
	"io"
	"regexp"
	"strings"

	"m3u-reader/m3u"
)

var (
	// attributeRegex matches M3U attributes in the format key="value"
	attributeRegex = regexp.MustCompile(`([a-zA-Z0-9_-]+)="([^"]*)"`)
)

// ParseExtInf parses an IPTV style tag body such as
//
//	-1 tvg-id="bbc.uk" group-title="News, UK",BBC One
//
// Attribute keys are lower-cased. The name is the text after the first
// comma once every attribute pair has been removed, so commas inside quoted
// values do not split it.
func ParseExtInf(body string) (m3u.ExtInf, error) {
	durationText := body
	if i := strings.IndexAny(body, " \t,"); i >= 0 {
		durationText = body[:i]
	}

	duration, err := m3u.ParseDuration(durationText)
	if err != nil {
		return m3u.ExtInf{}, err
	}

	extinf := m3u.ExtInf{
		Duration:   duration,
		Attributes: make(map[string]string),
	}

	rest := body[len(durationText):]
	lineWithoutPairs := rest
	for _, match := range attributeRegex.FindAllStringSubmatch(rest, -1) {
		key := strings.ToLower(strings.TrimSpace(match[1]))
		extinf.Attributes[key] = strings.TrimSpace(match[2])
		lineWithoutPairs = strings.Replace(lineWithoutPairs, match[0], "", 1)
	}

	if _, name, found := strings.Cut(lineWithoutPairs, ","); found {
		extinf.Name = unquote(strings.TrimSpace(name))
	}

	return extinf, nil
}

// NewReader returns an extended reader that parses IPTV attributes.
func NewReader(r io.Reader) (*m3u.ExtReader, error) {
	return m3u.NewExtReader(r, m3u.WithExtInfParser(ParseExtInf))
}

// Open opens the named IPTV playlist.
func Open(name string) (*m3u.ExtReader, error) {
	return m3u.OpenExt(name, m3u.WithExtInfParser(ParseExtInf))
}

func unquote(value string) string {
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = strings.Trim(value, `"`)
	}
	return value
}
