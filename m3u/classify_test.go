package m3u

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		line     string
		wantURL  bool
		wantHost string
	}{
		{"http://example.com/a.mp3", true, "example.com"},
		{"https://cdn.example.org:8443/live/stream.m3u8?token=x", true, "cdn.example.org"},
		{"rtmp://10.0.0.1/live", true, "10.0.0.1"},
		{"file:///home/user/song.mp3", false, ""},
		{"file:relative/path", false, ""},
		{"relative/path.mp3", false, ""},
		{"/absolute/path.mp3", false, ""},
		{`C:\Music\song.mp3`, false, ""},
		{"//example.com/no-scheme.mp3", false, ""},
		{"http://:8080/no-host", false, ""},
		{"Artist - Song.flac", false, ""},
		// net/url follows RFC 3986: bad escapes and scheme-relative hosts
		// without "//" do not yield a host.
		{"http://example.com/100%.mp3", false, ""},
		{"http:example.com/a.mp3", false, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.line, func(t *testing.T) {
			entry := Classify(tc.line)
			assert.Equal(t, tc.wantURL, entry.IsURL())

			if tc.wantURL {
				require.NotNil(t, entry.URL)
				assert.Equal(t, tc.wantHost, entry.URL.Hostname())
				assert.Empty(t, entry.Path)
			} else {
				assert.Nil(t, entry.URL)
				assert.Equal(t, tc.line, entry.Path)
			}
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	for _, line := range []string{"http://example.com/a.mp3", "song.mp3", "file:x"} {
		assert.Equal(t, Classify(line), Classify(line))
	}
}

func TestEntryString(t *testing.T) {
	assert.Equal(t, "http://example.com/a.mp3", Classify("http://example.com/a.mp3").String())
	assert.Equal(t, "song.mp3", Classify("song.mp3").String())
}
