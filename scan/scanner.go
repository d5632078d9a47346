package scan

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"m3u-reader/config"
	"m3u-reader/iptv"
	"m3u-reader/logger"
	"m3u-reader/m3u"

	"github.com/patrickmn/go-cache"
	"github.com/puzpuzpuz/xsync/v3"
)

// Scanner reads playlists according to a Config. Each playlist gets its
// own reader; readers are never shared between goroutines.
type Scanner struct {
	cfg     *config.Config
	cache   *cache.Cache
	results *xsync.MapOf[string, *Result]
}

// New returns a Scanner for cfg. A nil cfg means config.GetConfig().
func New(cfg *config.Config) *Scanner {
	if cfg == nil {
		cfg = config.GetConfig()
	}
	return &Scanner{
		cfg:     cfg,
		cache:   cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		results: xsync.NewMapOf[string, *Result](),
	}
}

// ScanReader reads every entry from r. source only labels the records.
func (s *Scanner) ScanReader(source string, r io.Reader) (*Result, error) {
	result := &Result{Source: source}

	if !s.cfg.Extended && !s.cfg.IPTV {
		reader := m3u.NewReader(r)
		defer reader.Release()

		for entry, err := range reader.All() {
			if err != nil {
				return result, fmt.Errorf("error reading %s: %w", source, err)
			}
			result.Records = append(result.Records, newRecord(source, entry))
		}
		return result, nil
	}

	var opts []m3u.ExtOption
	if s.cfg.IPTV {
		opts = append(opts, m3u.WithExtInfParser(iptv.ParseExtInf))
	}

	reader, err := m3u.NewExtReader(r, opts...)
	if err != nil {
		return result, fmt.Errorf("error reading %s: %w", source, err)
	}
	defer reader.Release()

	for entry, err := range reader.All() {
		var notFound *m3u.ExtInfNotFoundError
		if errors.As(err, &notFound) {
			if s.cfg.Strict {
				return result, fmt.Errorf("error reading %s: %w", source, err)
			}
			logger.Default.Debugf("Untagged entry in %s: %s", source, notFound.Entry)
			record := newRecord(source, notFound.Entry)
			record.Untagged = true
			result.Records = append(result.Records, record)
			result.Untagged++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("error reading %s: %w", source, err)
		}

		record := newRecord(source, entry.Entry)
		duration := entry.ExtInf.Duration
		record.Duration = &duration
		record.Name = entry.ExtInf.Name
		if s.cfg.IPTV {
			ch := iptv.ChannelFrom(entry)
			record.Channel = &ch
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

// ScanFile reads the named playlist. Results are memoised until the file's
// size or modification time changes, or the cache TTL expires. A zero TTL
// disables memoisation.
func (s *Scanner) ScanFile(path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	key := fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())
	useCache := s.cfg.CacheTTL > 0
	if cached, ok := s.cache.Get(key); ok && useCache {
		logger.Default.Debugf("Using cached scan result for %s", path)
		return cached.(*Result), nil
	}

	src, err := m3u.OpenSourceSize(path, s.cfg.LineBufferBytes)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	result, err := s.ScanReader(path, src)
	if err != nil {
		return result, err
	}

	if useCache {
		s.cache.Set(key, result, cache.DefaultExpiration)
	}
	return result, nil
}

// ScanAll scans every path concurrently and returns the results in the
// order of paths. Failed playlists are logged and carry their error in
// Result.Err.
func (s *Scanner) ScanAll(ctx context.Context, paths []string) []*Result {
	var wg sync.WaitGroup

	for _, path := range paths {
		select {
		case <-ctx.Done():
			logger.Default.Warnf("Scan cancelled before %s", path)
			s.results.Store(path, &Result{Source: path, Err: ctx.Err()})
			continue
		default:
		}

		wg.Add(1)
		go func(path string) {
			defer wg.Done()

			result, err := s.ScanFile(path)
			if result == nil {
				result = &Result{Source: path}
			}
			if err != nil {
				logger.Default.Errorf("Error scanning playlist: %v", err)
				result.Err = err
			} else {
				logger.Default.Logf("Scanned %s: %d entries (%d untagged)", path, len(result.Records), result.Untagged)
			}
			s.results.Store(path, result)
		}(path)
	}
	wg.Wait()

	results := make([]*Result, 0, len(paths))
	for _, path := range paths {
		if result, ok := s.results.Load(path); ok {
			results = append(results, result)
		}
	}
	return results
}

// Result returns the latest result stored for path by ScanAll.
func (s *Scanner) Result(path string) (*Result, bool) {
	return s.results.Load(path)
}

func newRecord(source string, entry m3u.Entry) Record {
	kind := KindPath
	if entry.IsURL() {
		kind = KindURL
	}
	return Record{
		Source:   source,
		Kind:     kind,
		Location: entry.String(),
	}
}
